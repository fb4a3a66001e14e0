package header

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/dave-shawley/ietfparse/internal/grammar"
	"github.com/dave-shawley/ietfparse/internal/ioutil"
	"github.com/dave-shawley/ietfparse/internal/util"
)

// ContentType holds a parsed media type as found in Content-Type and
// Accept field values. Suffix carries the RFC 6839 structured syntax
// suffix, the part after the final "+" of the subtype, without the "+".
type ContentType struct {
	Type    string
	Subtype string
	Suffix  string
	Params  Values
}

// ParseContentType parses a media type with optional parameters from the
// given input s (string or []byte).
//
// Type, subtype, suffix, and parameter names are folded to lower case.
// RFC 2045 comments around the media type and between parameters are
// discarded. Parameter segments without an "=" are skipped unless
// opts.Strict is set.
func ParseContentType[T ~string | ~[]byte](s T, opts *ParseOptions) (ContentType, error) {
	v := util.TrimSP(string(s))
	if v == "" {
		return ContentType{}, errtrace.Wrap(newMalformedValueErr("empty input"))
	}

	// Comments may contain ";", so they go before the head/params cut.
	// StripComments leaves quoted parameter values untouched.
	v = grammar.StripComments(v)

	head := v
	var rest string
	if i := strings.IndexByte(v, ';'); i >= 0 {
		head, rest = v[:i], v[i:]
	}

	ct, err := parseMediaType(head)
	if err != nil {
		return ContentType{}, errtrace.Wrap(err)
	}

	params, skipped, err := grammar.ScanParams(rest, grammar.ParamFlags{
		LowerValues: !opts.preserveValueCase(),
		Comments:    true,
	})
	if err != nil {
		return ContentType{}, errtrace.Wrap(newMalformedValueErr(err))
	}
	if len(skipped) > 0 && opts.strict() {
		return ContentType{}, errtrace.Wrap(newStrictViolationErr("invalid parameter %q", skipped[0]))
	}

	if len(params) > 0 {
		ct.Params = make(Values, len(params))
		for _, kv := range params {
			ct.Params.Append(kv[0], kv[1])
		}
	}
	return ct, nil
}

func parseMediaType(s string) (ContentType, error) {
	slash := strings.IndexByte(s, '/')
	if slash < 0 {
		return ContentType{}, errtrace.Wrap(newMalformedValueErr("media type %q has no subtype", s))
	}

	ct := ContentType{
		Type:    util.LCase(util.TrimSP(s[:slash])),
		Subtype: util.LCase(util.TrimSP(s[slash+1:])),
	}
	if plus := strings.LastIndexByte(ct.Subtype, '+'); plus >= 0 {
		ct.Suffix = ct.Subtype[plus+1:]
		ct.Subtype = ct.Subtype[:plus]
	}

	if !isTypeToken(ct.Type) || !isTypeToken(ct.Subtype) ||
		(ct.Suffix != "" && !grammar.IsToken(ct.Suffix)) {
		return ContentType{}, errtrace.Wrap(newMalformedValueErr("invalid media type %q", s))
	}
	return ct, nil
}

func isTypeToken(s string) bool { return s == "*" || grammar.IsToken(s) }

func (ct ContentType) String() string { return ct.Render(nil) }

func (ct ContentType) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ct.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (ct ContentType) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	cw.Fprint(ct.Type, "/", ct.Subtype)
	if ct.Suffix != "" {
		cw.Fprint("+", ct.Suffix)
	}
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(renderParams(w, ct.Params, opts))
	})
	return errtrace.Wrap2(cw.Result())
}

func (ct ContentType) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, ct.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(ct.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, ct.String())
			return
		}

		type hideMethods ContentType
		type ContentType hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), ContentType(ct))
		return
	}
}

func (ct ContentType) Equal(val any) bool {
	var other ContentType
	switch v := val.(type) {
	case ContentType:
		other = v
	case *ContentType:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return util.EqFold(ct.Type, other.Type) &&
		util.EqFold(ct.Subtype, other.Subtype) &&
		util.EqFold(ct.Suffix, other.Suffix) &&
		equalParams(ct.Params, other.Params)
}

func (ct ContentType) IsValid() bool {
	return isTypeToken(ct.Type) &&
		isTypeToken(ct.Subtype) &&
		(ct.Suffix == "" || grammar.IsToken(ct.Suffix))
}

func (ct ContentType) IsZero() bool {
	return ct.Type == "" &&
		ct.Subtype == "" &&
		ct.Suffix == "" &&
		len(ct.Params) == 0
}

func (ct ContentType) Clone() ContentType {
	ct.Params = ct.Params.Clone()
	return ct
}

// Quality returns the value of the "q" parameter, or 1 when the parameter
// is absent or unparseable.
func (ct ContentType) Quality() float64 {
	if v, ok := ct.Params.Last("q"); ok {
		if q, err := grammar.ParseQValue(v); err == nil {
			return q
		}
	}
	return 1
}

func (ct ContentType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

func (ct *ContentType) UnmarshalText(data []byte) error {
	v, err := ParseContentType(data, nil)
	if err != nil {
		*ct = ContentType{}
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil
		}
		return errtrace.Wrap(err)
	}
	*ct = v
	return nil
}

var _ Field = ContentType{}
