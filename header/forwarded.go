package header

import (
	"braces.dev/errtrace"

	"github.com/dave-shawley/ietfparse/internal/grammar"
)

// stdForwardedParams is the parameter set registered by RFC 7239.
var stdForwardedParams = map[string]bool{
	"by":    true,
	"for":   true,
	"host":  true,
	"proto": true,
}

// ParseForwarded parses a Forwarded field value from the given input s
// (string or []byte). Each element of the result describes one hop, in
// the order the proxies appended them.
//
// Parameter names are folded to lower case while values keep their case,
// since the "by" and "for" node identifiers are case-sensitive. Setting
// opts.StandardParamsOnly rejects parameters outside by, for, host, and
// proto.
func ParseForwarded[T ~string | ~[]byte](s T, opts *ParseOptions) ([]Values, error) {
	elems := grammar.SplitList(string(s))

	out := make([]Values, 0, len(elems))
	for _, elem := range elems {
		params, skipped, err := grammar.ScanParams(elem, grammar.ParamFlags{})
		if err != nil {
			return nil, errtrace.Wrap(newMalformedValueErr(err))
		}
		if len(skipped) > 0 && opts.strict() {
			return nil, errtrace.Wrap(newStrictViolationErr("invalid parameter %q", skipped[0]))
		}

		hop := make(Values, len(params))
		for _, kv := range params {
			if opts.standardParamsOnly() && !stdForwardedParams[kv[0]] {
				return nil, errtrace.Wrap(newStrictViolationErr("non-standard parameter %q", kv[0]))
			}
			hop.Append(kv[0], kv[1])
		}
		out = append(out, hop)
	}
	return out, nil
}
