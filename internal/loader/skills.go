package loader

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedSkills = errors.New("malformed skills list")

// ParseSkills decodes the list literal stored in the skills column,
// e.g. ['Python', 'SQL']. Items may use single or double quotes and
// backslash escapes. A blank cell is an empty list.
func ParseSkills(text string) ([]string, error) {
	s := strings.TrimSpace(text)
	out := make([]string, 0)
	if s == "" {
		return out, nil
	}
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("%w: expected a bracketed list", ErrMalformedSkills)
	}

	body := s[1 : len(s)-1]
	i := 0
	for {
		i = skipSpace(body, i)
		if i >= len(body) {
			break
		}
		if body[i] != '\'' && body[i] != '"' {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformedSkills, body[i], i+1)
		}

		item, next, err := readQuoted(body, i)
		if err != nil {
			return nil, err
		}
		out = append(out, item)

		i = skipSpace(body, next)
		if i >= len(body) {
			break
		}
		if body[i] != ',' {
			return nil, fmt.Errorf("%w: expected ',' at offset %d", ErrMalformedSkills, i+1)
		}
		i++
	}
	return out, nil
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// readQuoted reads the quoted item starting at s[start] and returns it
// with the offset just past the closing quote.
func readQuoted(s string, start int) (string, int, error) {
	quote := s[start]
	var b strings.Builder
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\':
			if i+1 >= len(s) {
				return "", 0, fmt.Errorf("%w: dangling escape", ErrMalformedSkills)
			}
			i++
			switch s[i] {
			case '\\', '\'', '"':
				b.WriteByte(s[i])
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated item", ErrMalformedSkills)
}
