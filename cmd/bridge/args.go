package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseArgs splits a comma-separated literal list into host values ready
// for the session marshaller. Supported literals: none, true, false,
// integers, floats, quoted strings, and bracketed lists of the same.
func parseArgs(s string) ([]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts, err := splitTopLevel(s)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(parts))
	for i, p := range parts {
		v, err := parseLiteral(p)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}

func parseLiteral(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty literal")
	}

	switch s {
	case "none", "None", "nil":
		return nil, nil
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	}

	if s[0] == '[' {
		if s[len(s)-1] != ']' {
			return nil, fmt.Errorf("unterminated list: %s", s)
		}
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return []any{}, nil
		}
		parts, err := splitTopLevel(inner)
		if err != nil {
			return nil, err
		}
		elems := make([]any, len(parts))
		for i, p := range parts {
			v, err := parseLiteral(p)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return elems, nil
	}

	if s[0] == '\'' || s[0] == '"' {
		if len(s) < 2 || s[len(s)-1] != s[0] {
			return nil, fmt.Errorf("unterminated string: %s", s)
		}
		return s[1 : len(s)-1], nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse literal: %s", s)
}

// splitTopLevel splits on commas outside brackets and quotes.
func splitTopLevel(s string) ([]string, error) {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced brackets in %q", s)
			}
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets in %q", s)
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated string in %q", s)
	}
	parts = append(parts, s[start:])
	return parts, nil
}
