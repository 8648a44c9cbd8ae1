package grader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gitlab.com/codeprep.net/internal/domain"
	"gitlab.com/codeprep.net/internal/static/errs"
)

var assignmentPattern = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

// FormatStdin turns a test case input into the stdin handed to the program.
// With a schema the input must be a JSON object holding every field; without
// one, "name = value" assignments are rewritten to one value per line and
// anything else is passed through untouched.
func FormatStdin(input string, schema domain.InputSchema) (string, error) {
	if len(schema) > 0 {
		return formatWithSchema(input, schema)
	}
	if values, ok := parseAssignments(input); ok {
		return strings.Join(values, "\n"), nil
	}
	return input, nil
}

func formatWithSchema(input string, schema domain.InputSchema) (string, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return "", fmt.Errorf("%w: input is not a JSON object: %v", errs.ErrInvalidRequest, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: trailing data after JSON object", errs.ErrInvalidRequest)
	}

	lines := make([]string, 0, len(schema))
	for _, field := range schema {
		raw, ok := fields[field.Name]
		if !ok {
			return "", fmt.Errorf("%w: missing input field %q", errs.ErrInvalidRequest, field.Name)
		}
		line, err := formatField(field, raw)
		if err != nil {
			return "", fmt.Errorf("%w: field %q: %v", errs.ErrInvalidRequest, field.Name, err)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func formatField(field domain.InputField, raw json.RawMessage) (string, error) {
	switch field.Type {
	case domain.FieldInt, domain.FieldFloat, domain.FieldString, domain.FieldBool:
		return formatScalar(field.Type, raw)
	case domain.FieldIntArray, domain.FieldFloatArray, domain.FieldStringArray:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return "", fmt.Errorf("expected array: %w", err)
		}
		elemType := domain.FieldType(strings.TrimSuffix(string(field.Type), "[]"))
		out := make([]string, 0, len(elems))
		for _, elem := range elems {
			s, err := formatScalar(elemType, elem)
			if err != nil {
				return "", err
			}
			out = append(out, s)
		}
		return strings.Join(out, " "), nil
	default:
		return "", fmt.Errorf("unknown type %q", field.Type)
	}
}

func formatScalar(t domain.FieldType, raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t {
	case domain.FieldInt:
		n, ok := v.(json.Number)
		if !ok {
			return "", fmt.Errorf("expected integer, got %s", raw)
		}
		if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
			return "", fmt.Errorf("expected integer, got %s", raw)
		}
		return n.String(), nil
	case domain.FieldFloat:
		n, ok := v.(json.Number)
		if !ok {
			return "", fmt.Errorf("expected number, got %s", raw)
		}
		return n.String(), nil
	case domain.FieldBool:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("expected bool, got %s", raw)
		}
		return strconv.FormatBool(b), nil
	case domain.FieldString:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("expected string, got %s", raw)
		}
		return s, nil
	}
	return "", fmt.Errorf("unknown type %q", t)
}

// parseAssignments recognizes inputs written as `nums = [2,7], target = 9`.
// It reports false unless every top-level segment is an assignment. A lone
// assignment must bind a literal, so `a=b` or `x = 1 + 2` stay as written.
func parseAssignments(input string) ([]string, bool) {
	segments := splitTopLevel(input, ",\n")
	raw := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		m := assignmentPattern.FindStringSubmatch(seg)
		if m == nil || strings.HasPrefix(m[2], "=") {
			return nil, false
		}
		raw = append(raw, strings.TrimSpace(m[2]))
	}
	if len(raw) == 0 || (len(raw) == 1 && !isLiteral(raw[0])) {
		return nil, false
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, renderValue(v))
	}
	return values, true
}

// isLiteral accepts arrays, quoted strings, numbers and booleans
func isLiteral(v string) bool {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '[' && last == ']') || ((first == '"' || first == '\'') && last == first) {
			return true
		}
	}
	if v == "true" || v == "false" {
		return true
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func renderValue(v string) string {
	v = strings.TrimSpace(v)
	switch {
	case len(v) >= 2 && v[0] == '[' && v[len(v)-1] == ']':
		inner := strings.TrimSpace(v[1 : len(v)-1])
		if inner == "" {
			return ""
		}
		sep := " "
		elems := splitTopLevel(inner, ",")
		out := make([]string, 0, len(elems))
		for _, elem := range elems {
			elem = strings.TrimSpace(elem)
			if strings.HasPrefix(elem, "[") {
				sep = "\n"
			}
			out = append(out, renderValue(elem))
		}
		return strings.Join(out, sep)
	case len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0]:
		if v[0] == '"' {
			if s, err := strconv.Unquote(v); err == nil {
				return s
			}
		}
		return v[1 : len(v)-1]
	default:
		return v
	}
}

// splitTopLevel splits on any rune in seps that is outside brackets and quotes.
func splitTopLevel(s, seps string) []string {
	var (
		parts   []string
		depth   int
		quote   rune
		escaped bool
		start   int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '{' || r == '(':
			depth++
		case r == ']' || r == '}' || r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && strings.ContainsRune(seps, r):
			parts = append(parts, s[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(parts, s[start:])
}
