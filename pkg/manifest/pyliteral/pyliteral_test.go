// SPDX-License-Identifier: MPL-2.0

package pyliteral

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"true", "True", true},
		{"false", "False", false},
		{"none", "None", nil},
		{"int", "42", int64(42)},
		{"negative int", "-7", int64(-7)},
		{"hex int", "0xFF", int64(255)},
		{"octal int", "0o755", int64(493)},
		{"binary int", "0b101", int64(5)},
		{"underscored int", "1_000_000", int64(1000000)},
		{"float", "1.5", float64(1.5)},
		{"leading dot float", ".5", float64(0.5)},
		{"exponent float", "1e3", float64(1000)},
		{"negative exponent", "2.5e-2", float64(0.025)},
		{"double quoted string", `"Sale Extra"`, "Sale Extra"},
		{"single quoted string", `'Sale Extra'`, "Sale Extra"},
		{"unicode prefix", `u"Ventas"`, "Ventas"},
		{"raw string keeps backslash", `r"a\nb"`, `a\nb`},
		{"escapes", `"a\tb\nc"`, "a\tb\nc"},
		{"hex escape", `"\x41"`, "A"},
		{"unicode escape", `"é"`, "é"},
		{"unknown escape kept", `"a\qb"`, `a\qb`},
		{"adjacent concatenation", `"foo" "bar"`, "foobar"},
		{"adjacent across lines", "\"foo\"\n    \"bar\"", "foobar"},
		{"triple quoted", `"""multi
line"""`, "multi\nline"},
		{"comment before value", "# header\nTrue", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Collections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"empty list", "[]", []any{}},
		{"list", "[1, 2, 3]", []any{int64(1), int64(2), int64(3)}},
		{"list trailing comma", "['a', 'b',]", []any{"a", "b"}},
		{"tuple", "(1, 'x')", []any{int64(1), "x"}},
		{"empty dict", "{}", map[string]any{}},
		{"dict", `{'installable': False}`, map[string]any{"installable": false}},
		{"dict trailing comma", `{"a": 1,}`, map[string]any{"a": int64(1)}},
		{"set", "{1, 2}", []any{int64(1), int64(2)}},
		{"nested", `{"depends": ["base", "sale"], "data": []}`,
			map[string]any{"depends": []any{"base", "sale"}, "data": []any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Manifest(t *testing.T) {
	t.Parallel()

	input := `# -*- coding: utf-8 -*-
{
    "name": "Sale Extra",
    "version": "16.0.1.0.0",
    "author": "Example, "
              "Contributors",
    "depends": ["sale"],
    "installable": True,  # keep last
}`
	got, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Parse() = %T, want map", got)
	}
	if m["name"] != "Sale Extra" {
		t.Errorf("name = %#v, want %q", m["name"], "Sale Extra")
	}
	if m["author"] != "Example, Contributors" {
		t.Errorf("adjacent strings not concatenated: %#v", m["author"])
	}
	if m["installable"] != true {
		t.Errorf("installable = %#v, want true", m["installable"])
	}
}

func TestParse_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"bare name", "installable"},
		{"function call", `dict(installable=True)`},
		{"import", `__import__("os")`},
		{"f-string", `f"{x}"`},
		{"binary operator", "1 + 2"},
		{"unterminated string", `"abc`},
		{"unterminated dict", `{"a": 1`},
		{"unterminated list", `[1, 2`},
		{"missing colon", `{"a" 1}`},
		{"non-string dict key", `{1: "a"}`},
		{"trailing garbage", `{"a": 1} extra`},
		{"newline in single-quoted string", "\"a\nb\""},
		{"bad hex escape", `"\xZZ"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error should be *ParseError, got %T", err)
			}
		})
	}
}

func TestParseError_Position(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("{\n  'a': bad\n}"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
}

func TestIsTruthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero int", int64(0), false},
		{"int", int64(3), true},
		{"zero float", float64(0), false},
		{"float", float64(0.1), true},
		{"empty string", "", false},
		{"string", "yes", true},
		{"empty list", []any{}, false},
		{"list", []any{int64(1)}, true},
		{"empty dict", map[string]any{}, false},
		{"dict", map[string]any{"a": int64(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsTruthy(tt.v); got != tt.want {
				t.Errorf("IsTruthy(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
