package grammar

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/dave-shawley/ietfparse/internal/util"
)

// ParamFlags configures the behavior of [ScanParams].
type ParamFlags struct {
	// LowerValues case-folds parameter values to lower case.
	// Names are folded unconditionally.
	LowerValues bool
	// BadWhitespace tolerates whitespace around "=" as permitted by
	// the errata for the Link header grammar.
	BadWhitespace bool
	// Comments recognizes and discards parenthesized RFC 2045 comments
	// between parameters and after bare values.
	Comments bool
}

// SplitList splits s on top-level commas into trimmed, non-empty elements.
// Commas inside quoted strings or parenthesized comments do not split.
// Per RFC 7230 Section 7 empty elements do not contribute to the result.
func SplitList(s string) []string {
	var elems []string
	var depth int
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case inQuote:
			if c == '\\' && i+1 < len(s) {
				i++
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case c == ',' && depth == 0:
			if e := util.TrimSP(s[start:i]); e != "" {
				elems = append(elems, e)
			}
			start = i + 1
		}
	}
	if e := util.TrimSP(s[start:]); e != "" {
		elems = append(elems, e)
	}
	return elems
}

// SplitLinkList splits a Link field value on top-level commas, like
// [SplitList], but treats "<...>" target regions as opaque. Commas,
// quotes, and unbalanced parentheses are all legal inside a URI
// reference and must not affect the split.
func SplitLinkList(s string) []string {
	var elems []string
	inQuote := false
	inAngle := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case inAngle:
			if c == '>' {
				inAngle = false
			}
		case inQuote:
			if c == '\\' && i+1 < len(s) {
				i++
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '<':
			inAngle = true
		case c == ',':
			if e := util.TrimSP(s[start:i]); e != "" {
				elems = append(elems, e)
			}
			start = i + 1
		}
	}
	if e := util.TrimSP(s[start:]); e != "" {
		elems = append(elems, e)
	}
	return elems
}

// StripComments removes parenthesized comments that appear outside of
// quoted strings. Comments nest; an unterminated comment is preserved
// verbatim. The surviving text is returned with its spacing intact.
func StripComments(s string) string {
	if !strings.ContainsRune(s, '(') {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			if c == '\\' && i+1 < len(s) {
				sb.WriteByte(c)
				i++
				c = s[i]
			} else if c == '"' {
				inQuote = false
			}
			sb.WriteByte(c)
		case c == '"':
			inQuote = true
			sb.WriteByte(c)
		case c == '(':
			end, ok := skipComment(s, i)
			if !ok {
				sb.WriteString(s[i:])
				return sb.String()
			}
			i = end - 1
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// skipComment advances past the comment opening at s[i] and returns the
// index just after its closing parenthesis.
func skipComment(s string, i int) (int, bool) {
	depth := 0
	for ; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return i, false
}

// ScanParams scans a run of semicolon-delimited name=value parameters in a
// single left-to-right pass. Parameter names are folded to lower case.
// Quoted-string values are unescaped; bare values are trimmed.
//
// Segments that do not form a name=value pair are returned in skipped so the
// caller can decide between tolerating and failing. An unterminated quoted
// string is always fatal.
func ScanParams(s string, flags ParamFlags) (params [][2]string, skipped []string, err error) {
	i, n := 0, len(s)
	for i < n {
		i = skipSeparators(s, i, flags)
		if i >= n {
			break
		}

		segStart := i
		nameStart := i
		for i < n && isTChar[s[i]] {
			i++
		}
		name := s[nameStart:i]
		if flags.BadWhitespace {
			i = skipWS(s, i)
		}
		if name == "" || i >= n || s[i] != '=' {
			i = skipSegment(s, i)
			skipped = append(skipped, util.TrimSP(s[segStart:i]))
			continue
		}
		i++ // consume "="
		if flags.BadWhitespace {
			i = skipWS(s, i)
		}

		var val string
		if i < n && s[i] == '"' {
			val, i, err = scanQuoted(s, i)
			if err != nil {
				return nil, nil, errtrace.Wrap(err)
			}
		} else {
			valStart := i
			for i < n && s[i] != ';' && !(flags.Comments && s[i] == '(') {
				i++
			}
			val = util.TrimSP(s[valStart:i])
		}
		if flags.LowerValues {
			val = util.LCase(val)
		}
		params = append(params, [2]string{util.LCase(name), val})
	}
	return params, skipped, nil
}

func skipSeparators(s string, i int, flags ParamFlags) int {
	for i < len(s) {
		switch c := s[i]; {
		case c == ';' || c == ' ' || c == '\t':
			i++
		case flags.Comments && c == '(':
			end, ok := skipComment(s, i)
			if !ok {
				return len(s)
			}
			i = end
		default:
			return i
		}
	}
	return i
}

func skipWS(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// skipSegment consumes an unparseable segment up to the next top-level ";".
func skipSegment(s string, i int) int {
	inQuote := false
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case inQuote:
			if c == '\\' && i+1 < len(s) {
				i++
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == ';':
			return i
		}
	}
	return i
}

// scanQuoted consumes the quoted string opening at s[i] and returns its
// unescaped body together with the index just after the closing quote.
func scanQuoted(s string, i int) (string, int, error) {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	for i++; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) {
				i++
				sb.WriteByte(s[i])
				continue
			}
			sb.WriteByte(c)
		case '"':
			return sb.String(), i + 1, nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", i, errtrace.Wrap(newMalformedInputErr("unterminated quoted string"))
}

// ParseQValue parses a quality value per RFC 7231 Section 5.3.1:
// a float in [0, 1] with at most three decimal digits.
func ParseQValue(s string) (float64, error) {
	if s == "" {
		return 0, errtrace.Wrap(ErrEmptyInput)
	}
	digits := 0
	dot := -1
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			if dot >= 0 {
				digits++
			}
		case c == '.' && dot < 0:
			dot = i
		default:
			return 0, errtrace.Wrap(newMalformedInputErr("invalid quality value %q", s))
		}
	}
	if digits > 3 || dot == 0 || dot == len(s)-1 {
		return 0, errtrace.Wrap(newMalformedInputErr("invalid quality value %q", s))
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil || q > 1 {
		return 0, errtrace.Wrap(newMalformedInputErr("invalid quality value %q", s))
	}
	return q, nil
}
