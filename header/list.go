package header

import (
	"github.com/dave-shawley/ietfparse/internal/grammar"
)

// ParseList splits a comma-separated field value from the given input s
// (string or []byte) into its elements. Commas inside quoted strings do
// not split, elements are trimmed, empty elements are dropped, and fully
// quoted elements are unquoted.
func ParseList[T ~string | ~[]byte](s T) []string {
	elems := grammar.SplitList(string(s))
	for i, elem := range elems {
		elems[i] = grammar.Unquote(elem)
	}
	return elems
}
