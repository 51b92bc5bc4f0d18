package dispatch

import "strings"

// wildcardChars is the set of characters that make an address part a
// pattern rather than a literal label.
const wildcardChars = "*?[]{}"

// hasWildcard reports whether s contains any glob metacharacter.
func hasWildcard(s string) bool {
	return strings.ContainsAny(s, wildcardChars)
}

// Glob reports whether value matches pattern under OSC 1.1's address
// pattern language: '?' matches exactly one character, '*' matches zero or
// more, '[...]' matches one character from a set (or its negation when the
// set starts with '!'), and '{a,b,c}' matches any one of the comma
// separated alternatives. A pattern with none of these constructs matches
// only by equality.
func Glob(value, pattern string) bool {
	for _, variant := range expandBraces(pattern) {
		if globMatch(value, variant) {
			return true
		}
	}

	return false
}

// expandBraces expands every {a,b,c} group in pattern into the cross
// product of its alternatives, returning plain ?/*/[...] patterns.
func expandBraces(pattern string) []string {
	start := strings.IndexByte(pattern, '{')
	if start == -1 {
		return []string{pattern}
	}

	end := strings.IndexByte(pattern[start:], '}')
	if end == -1 {
		return []string{pattern}
	}
	end += start

	prefix := pattern[:start]
	alternatives := strings.Split(pattern[start+1:end], ",")
	suffixes := expandBraces(pattern[end+1:])

	out := make([]string, 0, len(alternatives)*len(suffixes))
	for _, alt := range alternatives {
		for _, suffix := range suffixes {
			out = append(out, prefix+alt+suffix)
		}
	}

	return out
}

// globMatch matches value against a brace-free pattern containing only
// literal characters, '?', '*' and '[...]' character classes.
func globMatch(value, pattern string) bool {
	if pattern == "" {
		return value == ""
	}

	switch pattern[0] {
	case '*':
		if globMatch(value, pattern[1:]) {
			return true
		}
		for len(value) > 0 {
			value = value[1:]
			if globMatch(value, pattern[1:]) {
				return true
			}
		}
		return false
	case '?':
		if value == "" {
			return false
		}
		return globMatch(value[1:], pattern[1:])
	case '[':
		end := strings.IndexByte(pattern, ']')
		if end == -1 {
			return len(value) > 0 && value[0] == '[' && globMatch(value[1:], pattern[1:])
		}
		if value == "" {
			return false
		}
		if !matchClass(value[0], pattern[1:end]) {
			return false
		}
		return globMatch(value[1:], pattern[end+1:])
	default:
		if value == "" || value[0] != pattern[0] {
			return false
		}
		return globMatch(value[1:], pattern[1:])
	}
}

// matchClass reports whether c belongs to the character class described by
// class, the contents of a [...] construct with the brackets stripped. A
// leading '!' negates the class; "a-z" style ranges are supported.
func matchClass(c byte, class string) bool {
	negate := false
	if strings.HasPrefix(class, "!") {
		negate = true
		class = class[1:]
	}

	matched := false
	for i := 0; i < len(class); i++ {
		if i+2 < len(class) && class[i+1] == '-' {
			lo, hi := class[i], class[i+2]
			if lo <= c && c <= hi {
				matched = true
			}
			i += 2
			continue
		}
		if class[i] == c {
			matched = true
		}
	}

	return matched != negate
}
