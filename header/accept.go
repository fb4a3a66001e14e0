package header

import (
	"cmp"
	"slices"

	"braces.dev/errtrace"

	"github.com/dave-shawley/ietfparse/internal/grammar"
)

// ParseAccept parses an Accept field value from the given input s (string
// or []byte) and returns the media ranges ordered from most to least
// preferred.
//
// The ordering follows RFC 7231 section 5.3.2: descending quality first,
// with an explicit "q=1" ahead of an implied one, then descending
// specificity. Ranges that remain tied keep their original order. Elements
// that fail to parse, and elements whose "q" parameter is unparseable, are
// dropped unless opts.Strict is set.
func ParseAccept[T ~string | ~[]byte](s T, opts *ParseOptions) ([]ContentType, error) {
	elems := grammar.SplitList(string(s))

	entries := make([]acceptEntry, 0, len(elems))
	for _, elem := range elems {
		ct, err := ParseContentType(elem, opts)
		if err != nil {
			if opts.strict() {
				return nil, errtrace.Wrap(newStrictViolationErr(err))
			}
			continue
		}

		ent := acceptEntry{ct: ct, q: 1, pos: len(entries)}
		if raw, ok := ct.Params.Last("q"); ok {
			q, err := grammar.ParseQValue(raw)
			if err != nil {
				if opts.strict() {
					return nil, errtrace.Wrap(newStrictViolationErr("invalid quality %q", raw))
				}
				// unusable preference, rank it last
				q = 0
			} else if q == 1 {
				ent.explicitMax = true
			}
			ent.q = q
		}
		entries = append(entries, ent)
	}

	slices.SortStableFunc(entries, cmpAcceptEntries)

	out := make([]ContentType, len(entries))
	for i, ent := range entries {
		out[i] = ent.ct
	}
	return out, nil
}

type acceptEntry struct {
	ct          ContentType
	q           float64
	explicitMax bool
	pos         int
}

func cmpAcceptEntries(e1, e2 acceptEntry) int {
	if c := cmp.Compare(e2.q, e1.q); c != 0 {
		return c
	}
	if e1.explicitMax != e2.explicitMax {
		if e1.explicitMax {
			return -1
		}
		return 1
	}
	if c := cmpSpecificity(e1.ct, e2.ct); c != 0 {
		return c
	}
	return cmp.Compare(e1.pos, e2.pos)
}

// cmpSpecificity orders more specific media ranges first: a concrete
// subtype beats "type/*" which beats "*/*", and among equally concrete
// ranges the one with more parameters wins.
func cmpSpecificity(ct1, ct2 ContentType) int {
	if c := cmp.Compare(wildcardRank(ct1), wildcardRank(ct2)); c != 0 {
		return c
	}
	return cmp.Compare(paramCount(ct2), paramCount(ct1))
}

func wildcardRank(ct ContentType) int {
	switch {
	case ct.Type == "*":
		return 2
	case ct.Subtype == "*":
		return 1
	default:
		return 0
	}
}

func paramCount(ct ContentType) int {
	n := len(ct.Params)
	if ct.Params.Has("q") {
		n--
	}
	return n
}
