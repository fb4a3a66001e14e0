// Package header provides facilities for working with HTTP and MIME header
// field values defined by RFC 9110 and related specifications.
//
// This package offers typed representations, parsing, validation, comparison,
// rendering, and cloning of structured field values such as Content-Type,
// Accept, Cache-Control, Forwarded, and Link. Parsers tolerate the deviations
// commonly found in real traffic and report what they skipped; a strict mode
// promotes tolerated skips into failures.
//
// # Parsing
//
// Each field has a dedicated parse function accepting both string and []byte
// input through generics:
//
//	ct, err := header.ParseContentType("text/html; charset=UTF-8", nil)
//	links, err := header.ParseLink(`<https://example.com/next>; rel="next"`, nil)
//
// The second argument is an optional [ParseOptions]; nil selects the default
// tolerant behavior. Type names, subtype names, and parameter names are
// always folded to lower case. Parameter values are folded too unless
// [ParseOptions.PreserveValueCase] is set.
//
// # Rendering
//
// Parsed values render back to canonical wire form through their String,
// Render, and RenderTo methods. Rendering sorts parameters by name so that
// the output is deterministic. Parsing a rendered value and rendering it
// again always reproduces the same string.
//
// # Errors
//
// Parse failures wrap [ErrMalformedValue]. Failures raised only because
// [ParseOptions.Strict] was set wrap [ErrStrictViolation]. Both can be
// tested with [errors.Is].
package header
