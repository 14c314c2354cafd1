// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import "unicode/utf8"

// IsValidUTF8 reports whether data is entirely well-formed UTF-8 per
// RFC 3629: rejects overlong encodings, surrogates, and code points above
// U+10FFFF, and rejects truncated multi-byte prefixes. unicode/utf8.Valid
// already implements exactly this rule set.
func IsValidUTF8(data []byte) bool {
	return utf8.Valid(data)
}
