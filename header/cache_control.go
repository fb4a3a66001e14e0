package header

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/dave-shawley/ietfparse/internal/grammar"
	"github.com/dave-shawley/ietfparse/internal/ioutil"
	"github.com/dave-shawley/ietfparse/internal/util"
)

// CacheControl holds parsed Cache-Control directives keyed by lower-cased
// name. Directives that carry no value, such as "no-store", map to the
// empty string.
type CacheControl map[string]string

// cacheControlFlags lists the RFC 9111 directives that are defined as
// valueless flags. The qualified forms of no-cache and private take a
// value, so they are not listed here.
var cacheControlFlags = map[string]bool{
	"must-revalidate":  true,
	"must-understand":  true,
	"no-store":         true,
	"no-transform":     true,
	"only-if-cached":   true,
	"proxy-revalidate": true,
	"public":           true,
}

// ParseCacheControl parses a Cache-Control field value from the given
// input s (string or []byte).
//
// Directive names are folded to lower case and quoted values are
// unquoted. Later duplicates of a directive overwrite earlier ones.
// Elements with an invalid name are skipped unless opts.Strict is set.
func ParseCacheControl[T ~string | ~[]byte](s T, opts *ParseOptions) (CacheControl, error) {
	elems := grammar.SplitList(string(s))

	cc := make(CacheControl, len(elems))
	for _, elem := range elems {
		name, val, hasVal := strings.Cut(elem, "=")
		name = util.LCase(util.TrimSP(name))
		if !grammar.IsToken(name) {
			if opts.strict() {
				return nil, errtrace.Wrap(newStrictViolationErr("invalid directive %q", name))
			}
			continue
		}
		if !hasVal {
			cc[name] = ""
			continue
		}

		val = util.TrimSP(val)
		if unq := grammar.Unquote(val); unq != val {
			val = unq
		} else if !opts.preserveValueCase() {
			val = util.LCase(val)
		}
		cc[name] = val
	}
	return cc, nil
}

// Has reports whether the named directive is present, with or without a
// value.
func (cc CacheControl) Has(name string) bool {
	_, ok := cc[util.LCase(name)]
	return ok
}

// Bool reports whether the named directive is present without a value.
func (cc CacheControl) Bool(name string) bool {
	v, ok := cc[util.LCase(name)]
	return ok && v == ""
}

// Get returns the value of the named directive.
func (cc CacheControl) Get(name string) (string, bool) {
	v, ok := cc[util.LCase(name)]
	return v, ok
}

// Int returns the value of the named directive parsed as a non-negative
// integer, as used by max-age and friends.
func (cc CacheControl) Int(name string) (int, bool) {
	v, ok := cc[util.LCase(name)]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (cc CacheControl) String() string { return cc.Render(nil) }

func (cc CacheControl) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	cc.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// RenderTo writes the directives sorted by name, one "," separated element
// per directive. Non-token values are quoted.
func (cc CacheControl) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	names := make([]string, 0, len(cc))
	for name := range cc {
		names = append(names, name)
	}
	slices.Sort(names)

	sep := ", "
	if opts != nil && opts.Compact {
		sep = ","
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	for i, name := range names {
		if i > 0 {
			cw.Fprint(sep)
		}
		cw.Fprint(name)
		if v := cc[name]; v != "" {
			cw.Fprint("=", grammar.TokenOrQuoted(v))
		}
	}
	return errtrace.Wrap2(cw.Result())
}

func (cc CacheControl) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, cc.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(cc.String()))
		return
	default:
		type hideMethods CacheControl
		type CacheControl hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), CacheControl(cc))
		return
	}
}

func (cc CacheControl) Equal(val any) bool {
	var other CacheControl
	switch v := val.(type) {
	case CacheControl:
		other = v
	case *CacheControl:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if len(cc) != len(other) {
		return false
	}
	for name, v1 := range cc {
		v2, ok := other[name]
		if !ok || !util.EqFold(v1, v2) {
			return false
		}
	}
	return true
}

// IsValid reports whether every directive name is a token and every flag
// directive is valueless.
func (cc CacheControl) IsValid() bool {
	for name, v := range cc {
		if !grammar.IsToken(name) {
			return false
		}
		if v != "" && cacheControlFlags[name] {
			return false
		}
	}
	return true
}

func (cc CacheControl) IsZero() bool { return len(cc) == 0 }

func (cc CacheControl) Clone() CacheControl {
	if cc == nil {
		return nil
	}
	cc2 := make(CacheControl, len(cc))
	for name, v := range cc {
		cc2[name] = v
	}
	return cc2
}

var _ Field = CacheControl{}
