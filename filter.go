// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import "strings"

// FilterByPrefix keeps entries whose name starts with prefix. Matching is
// a plain string prefix test; archive names in this format are flat
// (no directory separators are implied by the container), so no path
// normalization is applied.
func FilterByPrefix(entries []PackEntry, prefix string) []PackEntry {
	if prefix == "" {
		return entries
	}

	out := make([]PackEntry, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name, prefix) {
			out = append(out, e)
		}
	}

	return out
}

// FindByWildcard returns every entry whose name matches pattern under
// WildcardMatch. Archive name uniqueness is not enforced by this format,
// so a pattern may legitimately match more than one entry; callers decide
// how to handle that.
func FindByWildcard(entries []PackEntry, pattern string) []PackEntry {
	out := make([]PackEntry, 0, len(entries))
	for _, e := range entries {
		if WildcardMatch(pattern, e.Name) {
			out = append(out, e)
		}
	}

	return out
}
