package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := map[string]struct {
		lang Language
		id   int
		ok   bool
	}{
		"python":      {LanguagePython, 71, true},
		" JavaScript": {LanguageJavaScript, 63, true},
		"JAVA":        {LanguageJava, 62, true},
		"cpp":         {LanguageCPP, 54, true},
		"c++":         {"", 0, false},
		"":            {"", 0, false},
	}
	for name, tt := range tests {
		lang, ok := ParseLanguage(name)
		assert.Equal(t, tt.ok, ok, name)
		assert.Equal(t, tt.lang, lang, name)
		assert.Equal(t, tt.id, lang.SandboxID(), name)
	}
}

func TestSandboxStatus(t *testing.T) {
	assert.False(t, SandboxStatus{ID: StatusInQueue}.IsTerminal())
	assert.False(t, SandboxStatus{ID: StatusProcessing}.IsTerminal())
	for id := StatusAccepted; id <= StatusExecFormatError; id++ {
		assert.True(t, SandboxStatus{ID: id}.IsTerminal(), id)
	}
	assert.True(t, SandboxStatus{ID: StatusAccepted}.IsAccepted())
	assert.False(t, SandboxStatus{ID: StatusWrongAnswer}.IsAccepted())
}

func TestErrorText(t *testing.T) {
	compile, stderr, empty := "syntax error", "Traceback", ""
	status := SandboxStatus{ID: StatusRuntimeErrorNZEC, Description: "Runtime Error (NZEC)"}

	assert.Equal(t, "syntax error", (&ExecutionResult{CompileOutput: &compile, Stderr: &stderr, Status: status}).ErrorText())
	assert.Equal(t, "Traceback", (&ExecutionResult{CompileOutput: &empty, Stderr: &stderr, Status: status}).ErrorText())
	assert.Equal(t, "Runtime Error (NZEC)", (&ExecutionResult{Status: status}).ErrorText())
}

func TestNewSubmissionDerivesPassed(t *testing.T) {
	pass := TestCaseResult{TestCase: 1, Passed: true}
	fail := TestCaseResult{TestCase: 2}

	assert.True(t, NewSubmission("u", "p", "c", LanguagePython, []TestCaseResult{pass}, "").Passed)
	assert.False(t, NewSubmission("u", "p", "c", LanguagePython, []TestCaseResult{pass, fail}, "").Passed)
	assert.False(t, NewSubmission("u", "p", "c", LanguagePython, nil, "").Passed)
	assert.Equal(t, 1, CountPassed([]TestCaseResult{pass, fail}))
}
