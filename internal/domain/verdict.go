package domain

// Diagnostic is the triple logged when a case does not match
type Diagnostic struct {
	CaseID    string `json:"case_id"`
	Input     string `json:"input"`
	Reference string `json:"reference"`
	Observed  string `json:"observed"`
}

// Verdict is the outcome of comparing observed output with a reference
type Verdict struct {
	Matched    bool
	Diagnostic *Diagnostic // set only when Matched is false
}
