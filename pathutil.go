// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import "strings"

// isPathDelim reports whether c is a path separator. "/" is always a
// separator; "\" additionally is, matching the original's Windows build.
func isPathDelim(c byte) bool {
	return c == '/' || c == '\\'
}

// Extension returns the case-preserving extension substring following
// the last "." that is not immediately preceded by a path separator and
// itself contains no separator. Returns "" if path has no extension.
func Extension(path string) string {
	endPart := -1
	for i := 0; i < len(path); i++ {
		if path[i] == '.' && (i == 0 || !isPathDelim(path[i-1])) {
			endPart = i + 1
		}
	}

	if endPart < 0 {
		return ""
	}

	for i := endPart; i < len(path); i++ {
		if isPathDelim(path[i]) {
			return ""
		}
	}

	return path[endPart:]
}

// WildcardMatch reports whether name matches pattern using classic shell
// globbing: "?" matches exactly one character, "*" matches zero or more.
// Case-sensitive, no character classes, no escapes.
func WildcardMatch(pattern, name string) bool {
	p, s := 0, 0
	star, ss := -1, 0

	for s < len(name) {
		if p < len(pattern) && (pattern[p] == '?' || pattern[p] == name[s]) {
			p++
			s++
		} else if p < len(pattern) && pattern[p] == '*' {
			star = p
			p++
			ss = s
		} else if star >= 0 {
			p = star + 1
			ss++
			s = ss
		} else {
			return false
		}
	}

	for p < len(pattern) && pattern[p] == '*' {
		p++
	}

	return p == len(pattern)
}

// extensionEqualFold reports whether path's extension equals want, ignoring case.
func extensionEqualFold(path, want string) bool {
	return strings.EqualFold(Extension(path), want)
}
