package domain

import "strings"

// Language is a programming language accepted by the execution sandbox.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJava       Language = "java"
	LanguageCPP        Language = "cpp"
)

var sandboxLanguageIDs = map[Language]int{
	LanguagePython:     71,
	LanguageJavaScript: 63,
	LanguageJava:       62,
	LanguageCPP:        54,
}

// ParseLanguage normalizes a client supplied language name.
func ParseLanguage(name string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := sandboxLanguageIDs[lang]; !ok {
		return "", false
	}
	return lang, true
}

// SandboxID returns the Judge0 language id, or 0 for unknown languages.
func (l Language) SandboxID() int {
	return sandboxLanguageIDs[l]
}

func (l Language) String() string {
	return string(l)
}
