package ietfparse

import (
	"braces.dev/errtrace"

	"github.com/dave-shawley/ietfparse/header"
	"github.com/dave-shawley/ietfparse/internal/util"
)

// Error represents a content negotiation error.
type Error string

func (e Error) Error() string { return string(e) }

// ErrNoMatch is returned when no requested content type matches any of
// the available ones and no default was supplied.
const ErrNoMatch Error = "no matching content type"

// SelectOptions represents content negotiation options.
// A nil *SelectOptions selects the default behavior.
type SelectOptions struct {
	// Default, when set, is returned paired with itself instead of
	// failing with [ErrNoMatch].
	Default *header.ContentType
}

// SelectContentType picks the best representation to serve per RFC 7231
// Section 5.3.
//
// The requested list must already be in preference order, as produced by
// [header.ParseAccept]. An empty requested list behaves as "*/*", since a
// missing Accept field means the client accepts anything. The available
// list is scanned in server preference order and the first entry matching
// the most preferred requested entry wins.
//
// A requested and an available entry match when their types, subtypes,
// and suffixes are equal or a wildcard on either side covers them, and
// every parameter of the available entry is present with an equal value
// on the requested entry. Parameters present only on the requested entry
// do not block a match: the available side declares which parameters the
// server distinguishes on.
//
// SelectContentType returns the matched available entry together with the
// requested pattern it satisfied.
func SelectContentType(requested, available []header.ContentType, opts *SelectOptions) (selected, pattern header.ContentType, err error) {
	if len(requested) == 0 {
		requested = []header.ContentType{{Type: "*", Subtype: "*"}}
	}

	for _, req := range requested {
		if req.Quality() == 0 {
			continue
		}
		for _, av := range available {
			if matchContentType(req, av) {
				return av, req, nil
			}
		}
	}

	if opts != nil && opts.Default != nil {
		return *opts.Default, *opts.Default, nil
	}
	return header.ContentType{}, header.ContentType{}, errtrace.Wrap(ErrNoMatch)
}

func matchContentType(req, av header.ContentType) bool {
	if req.Type != "*" && av.Type != "*" && !util.EqFold(req.Type, av.Type) {
		return false
	}
	if req.Subtype != "*" && av.Subtype != "*" {
		if !util.EqFold(req.Subtype, av.Subtype) || !util.EqFold(req.Suffix, av.Suffix) {
			return false
		}
	}

	for name := range av.Params {
		if util.LCase(name) == "q" {
			continue
		}
		avVal, _ := av.Params.Last(name)
		reqVal, ok := req.Params.Last(name)
		if !ok || !util.EqFold(avVal, reqVal) {
			return false
		}
	}
	return true
}
