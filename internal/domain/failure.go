package domain

// Failure represents a failed or inconclusive case
type Failure struct {
	CaseID    string   `json:"case_id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Outcome   Outcome  `json:"outcome"`
	Input     string   `json:"input"`
	Reference string   `json:"reference"`
	Observed  string   `json:"observed"`
	Message   string   `json:"message"`
	Cycles    int      `json:"cycles"`
	Resolved  bool     `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
