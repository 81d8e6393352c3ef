// SPDX-License-Identifier: MPL-2.0

// Package pyliteral evaluates Python literal expressions without executing
// any code. It accepts exactly the value grammar found in addon manifests:
// booleans, None, numbers, strings (including prefixes, triple quotes, and
// implicit adjacent concatenation), lists, tuples, sets, and dicts with
// string keys. Anything else, including names, calls, and operators beyond
// unary +/-, is rejected with a positioned ParseError.
package pyliteral

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseError reports invalid literal content with its position in the input.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid literal expression at line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// Parse evaluates the input as a single literal expression. Trailing
// whitespace and comments are permitted; any other trailing content is an
// error. Returned values are nil, bool, int64, float64, string, []any
// (lists, tuples, sets), or map[string]any (dicts).
func Parse(data []byte) (any, error) {
	s := &scanner{input: string(data), line: 1, col: 1}
	s.skipSpace()
	v, err := s.parseValue()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		return nil, s.errorf("unexpected content after literal")
	}
	return v, nil
}

// IsTruthy mirrors Python truthiness for parsed literal values: None, False,
// zero numbers, and empty strings/sequences/mappings are falsy.
func IsTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

type scanner struct {
	input string
	pos   int
	line  int
	col   int
}

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) advance() byte {
	c := s.input[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *scanner) errorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: s.line, Col: s.col}
}

// skipSpace consumes whitespace, comments, and backslash line continuations.
func (s *scanner) skipSpace() {
	for !s.eof() {
		switch c := s.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '#':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		case c == '\\' && s.pos+1 < len(s.input) && (s.input[s.pos+1] == '\n' || s.input[s.pos+1] == '\r'):
			s.advance()
			s.advance()
		default:
			return
		}
	}
}

func (s *scanner) parseValue() (any, error) {
	if s.eof() {
		return nil, s.errorf("unexpected end of input")
	}
	switch c := s.peek(); {
	case c == '{':
		return s.parseDictOrSet()
	case c == '[':
		return s.parseSequence('[', ']')
	case c == '(':
		return s.parseSequence('(', ')')
	case c == '\'' || c == '"':
		return s.parseStringGroup()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return s.parseNumber()
	case isIdentStart(c):
		return s.parseKeyword()
	default:
		return nil, s.errorf("unexpected character %q", c)
	}
}

func (s *scanner) parseKeyword() (any, error) {
	start := s.pos
	for !s.eof() && isIdentPart(s.peek()) {
		s.advance()
	}
	word := s.input[start:s.pos]

	// A string prefix (u'', r"", b'''...) is an identifier glued to a quote.
	if !s.eof() && (s.peek() == '\'' || s.peek() == '"') && isStringPrefix(word) {
		raw := strings.ContainsAny(word, "rR")
		str, err := s.parseString(raw)
		if err != nil {
			return nil, err
		}
		return s.concatAdjacent(str)
	}

	switch word {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		return nil, s.errorf("name %q is not a literal", word)
	}
}

func isStringPrefix(word string) bool {
	if len(word) == 0 || len(word) > 2 {
		return false
	}
	for i := 0; i < len(word); i++ {
		switch word[i] {
		case 'u', 'U', 'b', 'B', 'r', 'R', 'f', 'F':
			if word[i] == 'f' || word[i] == 'F' {
				return false // f-strings interpolate, not a literal
			}
		default:
			return false
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// parseStringGroup parses one string literal plus any adjacent literals,
// which Python concatenates implicitly ("a" "b" == "ab").
func (s *scanner) parseStringGroup() (any, error) {
	str, err := s.parseString(false)
	if err != nil {
		return nil, err
	}
	return s.concatAdjacent(str)
}

func (s *scanner) concatAdjacent(first string) (any, error) {
	out := first
	for {
		save := *s
		s.skipSpace()
		if s.eof() {
			*s = save
			return out, nil
		}
		c := s.peek()
		if c == '\'' || c == '"' {
			next, err := s.parseString(false)
			if err != nil {
				return nil, err
			}
			out += next
			continue
		}
		if isIdentStart(c) {
			start := s.pos
			for !s.eof() && isIdentPart(s.peek()) {
				s.advance()
			}
			word := s.input[start:s.pos]
			if !s.eof() && (s.peek() == '\'' || s.peek() == '"') && isStringPrefix(word) {
				next, err := s.parseString(strings.ContainsAny(word, "rR"))
				if err != nil {
					return nil, err
				}
				out += next
				continue
			}
		}
		*s = save
		return out, nil
	}
}

// parseString consumes one quoted literal. The opening quote (or triple
// quote) has already been identified but not consumed.
func (s *scanner) parseString(raw bool) (string, error) {
	quote := s.advance()
	triple := false
	if s.pos+1 < len(s.input) && s.input[s.pos] == quote && s.input[s.pos+1] == quote {
		s.advance()
		s.advance()
		triple = true
	} else if !s.eof() && s.peek() == quote {
		// Empty string "" or ''.
		s.advance()
		return "", nil
	}

	var b strings.Builder
	for {
		if s.eof() {
			return "", s.errorf("unterminated string literal")
		}
		c := s.peek()
		if c == quote {
			if !triple {
				s.advance()
				return b.String(), nil
			}
			if strings.HasPrefix(s.input[s.pos:], string([]byte{quote, quote, quote})) {
				s.advance()
				s.advance()
				s.advance()
				return b.String(), nil
			}
			b.WriteByte(s.advance())
			continue
		}
		if c == '\n' && !triple {
			return "", s.errorf("newline in single-quoted string")
		}
		if c == '\\' && !raw {
			s.advance()
			if err := s.writeEscape(&b); err != nil {
				return "", err
			}
			continue
		}
		b.WriteByte(s.advance())
	}
}

// writeEscape decodes the character(s) after a backslash. Unknown escapes
// keep the backslash, matching Python.
func (s *scanner) writeEscape(b *strings.Builder) error {
	if s.eof() {
		return s.errorf("unterminated escape sequence")
	}
	c := s.advance()
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\\', '\'', '"':
		b.WriteByte(c)
	case '\n':
		// Escaped newline: line continuation inside a string.
	case 'x':
		return s.writeHexEscape(b, 2)
	case 'u':
		return s.writeHexEscape(b, 4)
	case 'U':
		return s.writeHexEscape(b, 8)
	default:
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (s *scanner) writeHexEscape(b *strings.Builder, digits int) error {
	if s.pos+digits > len(s.input) {
		return s.errorf("truncated hex escape")
	}
	hex := s.input[s.pos : s.pos+digits]
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return s.errorf("invalid hex escape %q", hex)
	}
	for i := 0; i < digits; i++ {
		s.advance()
	}
	if digits == 2 {
		b.WriteByte(byte(n))
	} else {
		if !utf8.ValidRune(rune(n)) {
			return s.errorf("invalid unicode escape %q", hex)
		}
		b.WriteRune(rune(n))
	}
	return nil
}

func (s *scanner) parseNumber() (any, error) {
	start := s.pos
	neg := false
	if c := s.peek(); c == '+' || c == '-' {
		neg = c == '-'
		s.advance()
		s.skipSpace()
		start = s.pos
	}
	for !s.eof() {
		c := s.peek()
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
			c == '.' || c == 'x' || c == 'X' || c == 'o' || c == 'O' || c == '_' ||
			((c == '+' || c == '-') && s.pos > start && (s.input[s.pos-1] == 'e' || s.input[s.pos-1] == 'E')) {
			s.advance()
			continue
		}
		break
	}
	text := strings.ReplaceAll(s.input[start:s.pos], "_", "")
	if text == "" {
		return nil, s.errorf("malformed number")
	}

	if !strings.ContainsAny(text, ".eE") || strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		if i, err := strconv.ParseInt(text, 0, 64); err == nil {
			if neg {
				i = -i
			}
			return i, nil
		}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		if neg {
			f = -f
		}
		return f, nil
	}
	return nil, s.errorf("malformed number %q", text)
}

// parseSequence handles lists and tuples; both come back as []any.
func (s *scanner) parseSequence(open, close byte) (any, error) {
	if c := s.advance(); c != open {
		return nil, s.errorf("expected %q", open)
	}
	items := []any{}
	for {
		s.skipSpace()
		if s.eof() {
			return nil, s.errorf("unterminated sequence")
		}
		if s.peek() == close {
			s.advance()
			return items, nil
		}
		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		s.skipSpace()
		if s.eof() {
			return nil, s.errorf("unterminated sequence")
		}
		switch s.peek() {
		case ',':
			s.advance()
		case close:
			s.advance()
			return items, nil
		default:
			return nil, s.errorf("expected ',' or %q in sequence", close)
		}
	}
}

// parseDictOrSet disambiguates after the first element: a ':' makes it a
// dict, anything else a set. Sets come back as []any.
func (s *scanner) parseDictOrSet() (any, error) {
	s.advance() // consume '{'
	s.skipSpace()
	if s.eof() {
		return nil, s.errorf("unterminated dict")
	}
	if s.peek() == '}' {
		s.advance()
		return map[string]any{}, nil
	}

	first, err := s.parseValue()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if s.eof() {
		return nil, s.errorf("unterminated dict")
	}
	if s.peek() == ':' {
		return s.parseDictRest(first)
	}
	return s.parseSetRest(first)
}

func (s *scanner) parseDictRest(firstKey any) (any, error) {
	out := map[string]any{}
	key := firstKey
	for {
		ks, ok := key.(string)
		if !ok {
			return nil, s.errorf("dict keys must be strings, got %T", key)
		}
		s.skipSpace()
		if s.eof() || s.peek() != ':' {
			return nil, s.errorf("expected ':' after dict key %q", ks)
		}
		s.advance()
		s.skipSpace()
		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		out[ks] = v

		s.skipSpace()
		if s.eof() {
			return nil, s.errorf("unterminated dict")
		}
		switch s.peek() {
		case ',':
			s.advance()
			s.skipSpace()
			if !s.eof() && s.peek() == '}' {
				s.advance()
				return out, nil
			}
		case '}':
			s.advance()
			return out, nil
		default:
			return nil, s.errorf("expected ',' or '}' in dict")
		}

		key, err = s.parseValue()
		if err != nil {
			return nil, err
		}
	}
}

func (s *scanner) parseSetRest(first any) (any, error) {
	items := []any{first}
	for {
		s.skipSpace()
		if s.eof() {
			return nil, s.errorf("unterminated set")
		}
		switch s.peek() {
		case ',':
			s.advance()
			s.skipSpace()
			if !s.eof() && s.peek() == '}' {
				s.advance()
				return items, nil
			}
		case '}':
			s.advance()
			return items, nil
		default:
			return nil, s.errorf("expected ',' or '}' in set")
		}

		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}
