package domain

// TestCase represents an input/expected-output pair for a problem
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}
