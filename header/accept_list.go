package header

import (
	"cmp"
	"slices"

	"braces.dev/errtrace"

	"github.com/dave-shawley/ietfparse/internal/grammar"
	"github.com/dave-shawley/ietfparse/internal/util"
)

// ParseAcceptCharset parses an Accept-Charset field value from the given
// input s (string or []byte) and returns the charset tokens ordered from
// most to least preferred.
//
// Tokens are folded to lower case. A "*" wildcard sorts after every
// acceptable token, and tokens rejected with a quality below 0.001 sort
// after the wildcard.
func ParseAcceptCharset[T ~string | ~[]byte](s T, opts *ParseOptions) ([]string, error) {
	return errtrace.Wrap2(parseQualifiedList(string(s), opts))
}

// ParseAcceptEncoding parses an Accept-Encoding field value from the given
// input s (string or []byte). The result ordering matches
// [ParseAcceptCharset].
func ParseAcceptEncoding[T ~string | ~[]byte](s T, opts *ParseOptions) ([]string, error) {
	return errtrace.Wrap2(parseQualifiedList(string(s), opts))
}

// ParseAcceptLanguage parses an Accept-Language field value from the given
// input s (string or []byte). The result ordering matches
// [ParseAcceptCharset].
func ParseAcceptLanguage[T ~string | ~[]byte](s T, opts *ParseOptions) ([]string, error) {
	return errtrace.Wrap2(parseQualifiedList(string(s), opts))
}

type qualifiedEntry struct {
	tok         string
	q           float64
	explicitMax bool
	pos         int
}

func parseQualifiedList(v string, opts *ParseOptions) ([]string, error) {
	var (
		accepted []qualifiedEntry
		rejected []string
		wildcard bool
	)
	for _, elem := range grammar.SplitList(v) {
		name, rest, _ := cutParams(elem)
		tok := util.LCase(util.TrimSP(name))
		if !grammar.IsToken(tok) {
			if opts.strict() {
				return nil, errtrace.Wrap(newStrictViolationErr("invalid token %q", tok))
			}
			continue
		}

		params, skipped, err := grammar.ScanParams(rest, grammar.ParamFlags{LowerValues: true})
		if err != nil {
			return nil, errtrace.Wrap(newMalformedValueErr(err))
		}
		if len(skipped) > 0 && opts.strict() {
			return nil, errtrace.Wrap(newStrictViolationErr("invalid parameter %q", skipped[0]))
		}

		q, explicitMax := 1.0, false
		for _, kv := range params {
			if kv[0] != "q" {
				continue
			}
			q, err = grammar.ParseQValue(kv[1])
			if err != nil {
				if opts.strict() {
					return nil, errtrace.Wrap(newStrictViolationErr("invalid quality %q", kv[1]))
				}
				q = 0
			}
			explicitMax = q == 1
		}

		if tok == "*" {
			wildcard = true
			continue
		}
		if q < 0.001 {
			rejected = append(rejected, tok)
			continue
		}
		accepted = append(accepted, qualifiedEntry{tok: tok, q: q, explicitMax: explicitMax, pos: len(accepted)})
	}

	slices.SortStableFunc(accepted, func(e1, e2 qualifiedEntry) int {
		if c := cmp.Compare(e2.q, e1.q); c != 0 {
			return c
		}
		if e1.explicitMax != e2.explicitMax {
			if e1.explicitMax {
				return -1
			}
			return 1
		}
		return cmp.Compare(e1.pos, e2.pos)
	})

	out := make([]string, 0, len(accepted)+len(rejected)+1)
	for _, ent := range accepted {
		out = append(out, ent.tok)
	}
	if wildcard {
		out = append(out, "*")
	}
	return append(out, rejected...), nil
}

// cutParams splits a list element into its leading item and the parameter
// tail starting at the first ";".
func cutParams(elem string) (item, rest string, found bool) {
	for i := 0; i < len(elem); i++ {
		if elem[i] == ';' {
			return elem[:i], elem[i:], true
		}
	}
	return elem, "", false
}
