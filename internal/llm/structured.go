package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// It tolerates markdown code fences, surrounding prose, comments and
// numbers written as ".5". If validator is non-nil, the extracted value is
// validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	jsonStr := extractJSONBlock(stripCodeFences(raw))
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	jsonStr = normalizeLeadingDecimalNumbers(stripJSONComments(jsonStr))

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// stringState tracks whether a byte scan is inside a JSON string literal.
type stringState struct {
	in      bool
	escaped bool
}

// advance consumes c and reports whether it belongs to a string literal,
// quotes included.
func (s *stringState) advance(c byte) bool {
	switch {
	case s.escaped:
		s.escaped = false
		return true
	case s.in:
		if c == '\\' {
			s.escaped = true
		} else if c == '"' {
			s.in = false
		}
		return true
	case c == '"':
		s.in = true
		return true
	default:
		return false
	}
}

// stripCodeFences drops markdown fence lines (``` or ```json).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	var st stringState
	depth := 0
	for i := start; i < len(s); i++ {
		if st.advance(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// stripJSONComments removes // and /* */ comments outside string values.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var st stringState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.advance(c) {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) && (s[i] != '*' || s[i+1] != '/') {
				i++
			}
			i++
			continue
		}

		b.WriteByte(c)
	}
	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites ".8" and "-.3" outside string
// values into "0.8" and "-0.3".
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var st stringState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.advance(c) {
			b.WriteByte(c)
			continue
		}
		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
		default:
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
