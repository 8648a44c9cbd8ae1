package judge0

import (
	"encoding/base64"
	"strings"

	"gitlab.com/codeprep.net/internal/domain"
)

type createSubmissionRequest struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

type createSubmissionResponse struct {
	Token string `json:"token"`
}

type submissionResponse struct {
	Token         string               `json:"token"`
	Stdout        *string              `json:"stdout"`
	Stderr        *string              `json:"stderr"`
	CompileOutput *string              `json:"compile_output"`
	Message       *string              `json:"message"`
	Status        domain.SandboxStatus `json:"status"`
	Time          *string              `json:"time"`
	Memory        *int64               `json:"memory"`
}

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// decode reverses the sandbox's base64 encoding. The sandbox wraps long
// payloads across lines, so whitespace is dropped before decoding.
func decode(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	compact := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, *s)
	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, err
	}
	out := string(raw)
	return &out, nil
}
