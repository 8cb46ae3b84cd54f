package main

import (
	"reflect"
	"testing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []any
	}{
		{"empty", "", nil},
		{"ints", "1, 2, 3", []any{int64(1), int64(2), int64(3)}},
		{"mixed scalars", "10, 2.5, true, none", []any{int64(10), 2.5, true, nil}},
		{"quoted strings", `'a', "b, c"`, []any{"a", "b, c"}},
		{"list", "[1, 2], 3", []any{[]any{int64(1), int64(2)}, int64(3)}},
		{"nested list", "[[1, 2], [3, 4]]", []any{[]any{[]any{int64(1), int64(2)}, []any{int64(3), int64(4)}}}},
		{"empty list", "[]", []any{[]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.input)
			if err != nil {
				t.Fatalf("parseArgs(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseArgs(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	for _, input := range []string{
		"[1, 2",
		"1]",
		"'open",
		"1, , 2",
		"what",
	} {
		if _, err := parseArgs(input); err == nil {
			t.Errorf("parseArgs(%q): expected error", input)
		}
	}
}
