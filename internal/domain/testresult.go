package domain

// TestCaseResult represents the judgement of a single test case
type TestCaseResult struct {
	TestCase int     `json:"testCase"`
	Passed   bool    `json:"passed"`
	Expected string  `json:"expected"`
	Actual   *string `json:"actual"`
	Error    *string `json:"error,omitempty"`
}

// CountPassed returns how many results are marked as passed
func CountPassed(results []TestCaseResult) int {
	n := 0
	for _, r := range results {
		if r.Passed {
			n++
		}
	}
	return n
}
