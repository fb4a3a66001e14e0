// Package ietfparse parses and formats structured HTTP and MIME field
// values and implements proactive content negotiation.
//
// The [github.com/dave-shawley/ietfparse/header] package provides the
// per-field parsers and the value types they produce. This package builds
// on it with [SelectContentType], which picks the best representation to
// serve given the client's parsed Accept value and the list of content
// types the server can produce:
//
//	requested, err := header.ParseAccept(req.Header.Get("Accept"), nil)
//	if err != nil { ... }
//	selected, _, err := ietfparse.SelectContentType(requested, available, nil)
//	if errors.Is(err, ietfparse.ErrNoMatch) {
//		// respond with 406 Not Acceptable
//	}
package ietfparse
