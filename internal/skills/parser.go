package skills

import (
	"fmt"
	"strconv"
	"strings"
)

// The field-semantics files use a minimal nested-mapping text format:
// line-oriented `key: value` pairs, nesting by indentation, `#` comments.
// Tabs count as two spaces. A line with a bare `key:` opens a nested scope;
// a dedent pops back to the matching ancestor scope.

type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type parseFrame struct {
	indent  int
	mapping map[string]interface{}
}

func parseDocument(src string) (map[string]interface{}, error) {
	root := make(map[string]interface{})
	stack := []parseFrame{{indent: -1, mapping: root}}

	for i, raw := range strings.Split(src, "\n") {
		line := strings.ReplaceAll(raw, "\t", "  ")
		content := strings.TrimSpace(stripComment(line))
		if content == "" {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " "))

		for len(stack) > 1 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]

		key, rest, found := strings.Cut(content, ":")
		if !found {
			return nil, &ParseError{Line: i + 1, Message: fmt.Sprintf("expected 'key: value', got %q", content)}
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, &ParseError{Line: i + 1, Message: "empty key"}
		}

		rest = strings.TrimSpace(rest)
		if rest == "" {
			child := make(map[string]interface{})
			parent.mapping[key] = child
			stack = append(stack, parseFrame{indent: indent, mapping: child})
			continue
		}

		parent.mapping[key] = coerceScalar(rest)
	}

	return root, nil
}

// stripComment removes an unquoted `#` and everything after it.
func stripComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			return line[:i]
		}
	}
	return line
}

// coerceScalar interprets a raw value as bool, int, float, or string. Quoted
// strings are unwrapped and never coerced.
func coerceScalar(raw string) interface{} {
	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') || (raw[0] == '\'' && raw[len(raw)-1] == '\'') {
			return raw[1 : len(raw)-1]
		}
	}

	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	return raw
}
