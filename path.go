package querystring

import (
	"strings"
)

// bracketSuffix marks an array-valued key in the bracket format.
const bracketSuffix = "[]"

// bracketKey renders key in the bracket format.
func bracketKey(key string) string {
	return key + bracketSuffix
}

// trimBracket strips a single trailing "[]" from a decoded key. Keys with
// content inside the brackets, such as "a[0]" or "a[b]", are nested paths and
// are left untouched.
func trimBracket(key string) string {
	return strings.TrimSuffix(key, bracketSuffix)
}
