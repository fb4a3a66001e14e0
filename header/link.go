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

// Param is a single name value pair attached to a Link. Parameters form
// an ordered sequence rather than a map because hreflang legally repeats.
type Param struct {
	Name  string
	Value string
}

// Link holds one parsed RFC 8288 Web Linking value.
type Link struct {
	// Target is the URI reference between "<" and ">".
	Target string
	Params []Param
}

// ParseLink parses a Link field value from the given input s (string or
// []byte).
//
// Parameter names are folded to lower case. Whitespace around the "=" of
// a parameter is tolerated per RFC 8288 errata. The rel, media, and type
// parameters keep their first occurrence and drop later duplicates, and
// a title* parameter overrides the value of title; set
// opts.KeepDuplicateParams to receive every parameter verbatim instead.
// Parameter segments without an "=" are skipped unless opts.Strict is set.
func ParseLink[T ~string | ~[]byte](s T, opts *ParseOptions) ([]Link, error) {
	elems := grammar.SplitLinkList(string(s))

	links := make([]Link, 0, len(elems))
	for _, elem := range elems {
		link, err := parseLinkValue(elem, opts)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		links = append(links, link)
	}
	return links, nil
}

func parseLinkValue(elem string, opts *ParseOptions) (Link, error) {
	if elem[0] != '<' {
		return Link{}, errtrace.Wrap(newMalformedValueErr("link %q has no target", elem))
	}
	gt := strings.IndexByte(elem, '>')
	if gt < 0 {
		return Link{}, errtrace.Wrap(newMalformedValueErr("link %q has an unterminated target", elem))
	}

	link := Link{Target: util.TrimSP(elem[1:gt])}
	if link.Target == "" {
		return Link{}, errtrace.Wrap(newMalformedValueErr("link %q has an empty target", elem))
	}

	rest := util.TrimSP(elem[gt+1:])
	if rest != "" && rest[0] != ';' {
		return Link{}, errtrace.Wrap(newMalformedValueErr("unexpected %q after link target", rest))
	}

	params, skipped, err := grammar.ScanParams(rest, grammar.ParamFlags{BadWhitespace: true})
	if err != nil {
		return Link{}, errtrace.Wrap(newMalformedValueErr(err))
	}
	if len(skipped) > 0 && opts.strict() {
		return Link{}, errtrace.Wrap(newStrictViolationErr("invalid parameter %q", skipped[0]))
	}

	if len(params) > 0 && opts.keepDuplicateParams() {
		link.Params = make([]Param, len(params))
		for i, kv := range params {
			link.Params[i] = Param{Name: kv[0], Value: kv[1]}
		}
		return link, nil
	}
	link.Params = buildLinkParams(params)
	return link, nil
}

// buildLinkParams applies the RFC 8288 single-occurrence rules. The rel,
// media, and type parameters keep their first occurrence in place. The
// title and title* parameters move to the end of the sequence, with the
// title* value taking precedence over title.
func buildLinkParams(params [][2]string) []Param {
	if len(params) == 0 {
		return nil
	}

	firstOnly := map[string]string{"rel": "", "media": "", "type": "", "title": "", "title*": ""}
	seen := make(map[string]bool, len(firstOnly))

	out := make([]Param, 0, len(params))
	for _, kv := range params {
		if _, special := firstOnly[kv[0]]; special {
			if seen[kv[0]] {
				continue
			}
			seen[kv[0]] = true
			firstOnly[kv[0]] = kv[1]
			if kv[0] == "title" || kv[0] == "title*" {
				continue
			}
		}
		out = append(out, Param{Name: kv[0], Value: kv[1]})
	}

	if seen["title*"] {
		out = append(out, Param{Name: "title*", Value: firstOnly["title*"]})
		if seen["title"] {
			out = append(out, Param{Name: "title", Value: firstOnly["title*"]})
		}
	} else if seen["title"] {
		out = append(out, Param{Name: "title", Value: firstOnly["title"]})
	}
	return out
}

// Rel returns the space-joined values of the rel parameters.
func (l Link) Rel() string {
	rels := l.Get("rel")
	return strings.Join(rels, " ")
}

// Get returns the values of every parameter with the given name, in order.
func (l Link) Get(name string) []string {
	name = util.LCase(name)
	var vals []string
	for _, p := range l.Params {
		if p.Name == name {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

// Has reports whether a parameter with the given name is present.
func (l Link) Has(name string) bool {
	name = util.LCase(name)
	return slices.ContainsFunc(l.Params, func(p Param) bool { return p.Name == name })
}

func (l Link) String() string { return l.Render(nil) }

func (l Link) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	l.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// RenderTo writes the link in canonical form: the target, then the joined
// rel parameter, then the remaining parameters sorted by name then value.
// Every parameter value is quoted.
func (l Link) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	params := make([]Param, 0, len(l.Params))
	for _, p := range l.Params {
		if util.LCase(p.Name) != "rel" {
			params = append(params, p)
		}
	}
	slices.SortFunc(params, func(p1, p2 Param) int {
		if c := strings.Compare(p1.Name, p2.Name); c != 0 {
			return c
		}
		return strings.Compare(p1.Value, p2.Value)
	})

	sep := "; "
	if opts != nil && opts.Compact {
		sep = ";"
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	cw.Fprint("<", l.Target, ">")
	if rel := l.Rel(); rel != "" {
		cw.Fprint(sep, "rel=", grammar.Quote(rel))
	}
	for _, p := range params {
		cw.Fprint(sep, util.LCase(p.Name), "=", grammar.Quote(p.Value))
	}
	return errtrace.Wrap2(cw.Result())
}

func (l Link) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, l.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(l.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, l.String())
			return
		}

		type hideMethods Link
		type Link hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Link(l))
		return
	}
}

func (l Link) Equal(val any) bool {
	var other Link
	switch v := val.(type) {
	case Link:
		other = v
	case *Link:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return l.Target == other.Target &&
		slices.EqualFunc(l.Params, other.Params, func(p1, p2 Param) bool {
			return util.EqFold(p1.Name, p2.Name) && p1.Value == p2.Value
		})
}

func (l Link) IsValid() bool {
	if l.Target == "" || strings.ContainsAny(l.Target, "<>") {
		return false
	}
	for _, p := range l.Params {
		if !grammar.IsToken(p.Name) {
			return false
		}
	}
	return true
}

func (l Link) IsZero() bool { return l.Target == "" && len(l.Params) == 0 }

func (l Link) Clone() Link {
	l.Params = slices.Clone(l.Params)
	return l
}

func (l Link) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Link) UnmarshalText(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		*l = Link{}
		return nil
	}
	links, err := ParseLink(data, nil)
	if err != nil {
		*l = Link{}
		return errtrace.Wrap(err)
	}
	if len(links) == 0 {
		*l = Link{}
		return errtrace.Wrap(newMalformedValueErr("no link value in %q", data))
	}
	*l = links[0]
	return nil
}

var _ Field = Link{}
