// Package grammar implements the low-level scanning routines shared by the
// header field parsers: token classification, quoted-string handling,
// comment stripping and parameter-list scanning.
package grammar

//go:generate go tool errtrace -w .

import (
	"strings"

	"github.com/dave-shawley/ietfparse/internal/errorutil"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// isTChar reports membership in the token character set of RFC 7230 Section 3.2.6.
var isTChar [256]bool

func init() {
	const tchars = "!#$%&'*+-.^_`|~" +
		"0123456789" +
		"abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for _, c := range []byte(tchars) {
		isTChar[c] = true
	}
}

func IsToken[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTChar[s[i]] {
			return false
		}
	}
	return true
}

// Quote wraps s in double quotes, escaping `"` and `\` with a backslash.
func Quote(s string) string {
	sb := strings.Builder{}
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// TokenOrQuoted returns s unchanged when it is a valid token,
// otherwise the quoted-string form.
func TokenOrQuoted(s string) string {
	if IsToken(s) {
		return s
	}
	return Quote(s)
}

// Unquote removes surrounding double quotes and resolves backslash escapes.
// Values that are not fully quoted are returned unchanged.
func Unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	body := s[1 : len(s)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	sb := strings.Builder{}
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		sb.WriteByte(body[i])
	}
	return sb.String()
}
