package header

//go:generate go tool errtrace -w .

import (
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/dave-shawley/ietfparse/internal/errorutil"
	"github.com/dave-shawley/ietfparse/internal/grammar"
	"github.com/dave-shawley/ietfparse/internal/ioutil"
	"github.com/dave-shawley/ietfparse/internal/types"
	"github.com/dave-shawley/ietfparse/internal/util"
)

// Values represents header parameters as a multi-value map.
type Values = types.Values

// RenderOptions represents field value rendering options.
type RenderOptions = types.RenderOptions

// Field is the common interface implemented by parsed field values.
type Field interface {
	types.Renderer
	types.ValidFlag
	types.Equalable
}

// Error represents a header parsing error.
type Error string

func (e Error) Error() string { return string(e) }

// Header returns true. It marks an error as originating from this package.
func (e Error) Header() bool { return true }

const (
	// ErrMalformedValue is returned when a field value cannot be parsed.
	ErrMalformedValue Error = "malformed field value"
	// ErrStrictViolation is returned when a deviation that the parser would
	// normally tolerate is encountered in strict mode.
	ErrStrictViolation Error = "strict mode violation"
)

func newMalformedValueErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedValue, args...) //errtrace:skip
}

func newStrictViolationErr(args ...any) error {
	return errorutil.NewWrapperError(ErrStrictViolation, args...) //errtrace:skip
}

// ParseOptions represents field value parsing options.
// A nil *ParseOptions selects the default tolerant behavior.
type ParseOptions struct {
	// Strict promotes tolerated deviations, such as parameter segments
	// without an "=", into parse failures.
	Strict bool
	// PreserveValueCase keeps the original case of parameter values.
	// Parameter names are folded to lower case regardless.
	PreserveValueCase bool
	// StandardParamsOnly rejects Forwarded parameters outside the set
	// registered by RFC 7239 (by, for, host, proto).
	StandardParamsOnly bool
	// KeepDuplicateParams disables the RFC 8288 single-occurrence rules
	// for Link parameters: duplicate rel, media, type, title, and title*
	// parameters are returned verbatim in input order.
	KeepDuplicateParams bool
}

func (opts *ParseOptions) strict() bool {
	return opts != nil && opts.Strict
}

func (opts *ParseOptions) preserveValueCase() bool {
	return opts != nil && opts.PreserveValueCase
}

func (opts *ParseOptions) standardParamsOnly() bool {
	return opts != nil && opts.StandardParamsOnly
}

func (opts *ParseOptions) keepDuplicateParams() bool {
	return opts != nil && opts.KeepDuplicateParams
}

// renderParams writes params to w sorted by name, each preceded by a ";"
// separator. Values that are not tokens are quoted.
func renderParams(w io.Writer, params Values, opts *RenderOptions) (num int, err error) {
	if len(params) == 0 {
		return 0, nil
	}

	kvs := make([][]string, 0, len(params))
	for k := range params {
		v, _ := params.Last(k)
		kvs = append(kvs, []string{util.LCase(k), v})
	}
	slices.SortFunc(kvs, util.CmpKVs)

	sep := "; "
	if opts != nil && opts.Compact {
		sep = ";"
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	for _, kv := range kvs {
		cw.Fprint(sep, kv[0], "=", grammar.TokenOrQuoted(kv[1]))
	}
	return errtrace.Wrap2(cw.Result())
}

// equalParams reports whether two parameter maps carry the same effective
// entries. Only the last value of each name is significant and values are
// compared case-insensitively.
func equalParams(p1, p2 Values) bool {
	if len(p1) != len(p2) {
		return false
	}
	for k := range p1 {
		v1, _ := p1.Last(k)
		v2, ok := p2.Last(k)
		if !ok || !util.EqFold(v1, v2) {
			return false
		}
	}
	return true
}
