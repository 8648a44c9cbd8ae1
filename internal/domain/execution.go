package domain

// Judge0 status ids.
const (
	StatusInQueue             = 1
	StatusProcessing          = 2
	StatusAccepted            = 3
	StatusWrongAnswer         = 4
	StatusTimeLimitExceeded   = 5
	StatusCompilationError    = 6
	StatusRuntimeErrorSIGSEGV = 7
	StatusRuntimeErrorSIGXFSZ = 8
	StatusRuntimeErrorSIGFPE  = 9
	StatusRuntimeErrorSIGABRT = 10
	StatusRuntimeErrorNZEC    = 11
	StatusRuntimeErrorOther   = 12
	StatusInternalError       = 13
	StatusExecFormatError     = 14
)

// SandboxStatus is the raw status descriptor reported by the sandbox.
type SandboxStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// IsTerminal reports whether the job left the queue/processing states.
func (s SandboxStatus) IsTerminal() bool {
	return s.ID != StatusInQueue && s.ID != StatusProcessing
}

func (s SandboxStatus) IsAccepted() bool {
	return s.ID == StatusAccepted
}

// ExecutionRequest is one program to run against one stdin.
type ExecutionRequest struct {
	SourceCode string
	Language   Language
	Stdin      string
}

// ExecutionJob tracks an in-flight sandbox submission while it is polled.
type ExecutionJob struct {
	Token    string
	Status   SandboxStatus
	Attempts int
}

// ExecutionResult is the decoded outcome of a terminal sandbox job.
// Fields the sandbox did not report stay nil.
type ExecutionResult struct {
	Stdout        *string       `json:"stdout"`
	Stderr        *string       `json:"stderr"`
	CompileOutput *string       `json:"compile_output"`
	Status        SandboxStatus `json:"status"`
	Time          *string       `json:"time"`
	Memory        *int64        `json:"memory"`
}

// ErrorText picks the most specific diagnostic for a failed execution.
func (r *ExecutionResult) ErrorText() string {
	for _, s := range []*string{r.CompileOutput, r.Stderr} {
		if s != nil && *s != "" {
			return *s
		}
	}
	return r.Status.Description
}
