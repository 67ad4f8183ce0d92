package cases

import "ttp/internal/domain"

// Select keeps the cases whose ID is in allow, in source order, and returns
// the allow-listed IDs that were not found. An empty allow list keeps all cases.
func Select(cases []domain.TestCase, allow []string) ([]domain.TestCase, []string) {
	if len(allow) == 0 {
		return cases, nil
	}

	wanted := make(map[string]bool, len(allow))
	for _, id := range allow {
		wanted[id] = true
	}

	var selected []domain.TestCase
	found := make(map[string]bool)
	for _, tc := range cases {
		if wanted[tc.ID] {
			selected = append(selected, tc)
			found[tc.ID] = true
		}
	}

	var missing []string
	seen := make(map[string]bool)
	for _, id := range allow {
		if !found[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return selected, missing
}

// Validate rejects case sets with duplicate identifiers
func Validate(cases []domain.TestCase) error {
	seen := make(map[string]bool, len(cases))
	for _, tc := range cases {
		if seen[tc.ID] {
			return configError(ErrDuplicateID, "%s", tc.ID)
		}
		seen[tc.ID] = true
	}
	return nil
}

// BuiltinIDs returns the identifiers of the embedded case set in order
func BuiltinIDs() ([]string, error) {
	cases, err := LiteralSource{}.Load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(cases))
	for i, tc := range cases {
		ids[i] = tc.ID
	}
	return ids, nil
}
