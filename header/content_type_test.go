package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dave-shawley/ietfparse/header"
)

func TestParseContentType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		opts    *header.ParseOptions
		want    header.ContentType
		wantErr error
	}{
		{
			"plain",
			"text/plain",
			nil,
			header.ContentType{Type: "text", Subtype: "plain"},
			nil,
		},
		{
			"folds case",
			"Text/HTML; Charset=UTF-8",
			nil,
			header.ContentType{
				Type:    "text",
				Subtype: "html",
				Params:  make(header.Values).Set("charset", "utf-8"),
			},
			nil,
		},
		{
			"preserve value case",
			"text/html; charset=UTF-8",
			&header.ParseOptions{PreserveValueCase: true},
			header.ContentType{
				Type:    "text",
				Subtype: "html",
				Params:  make(header.Values).Set("charset", "UTF-8"),
			},
			nil,
		},
		{
			"suffix",
			"application/vnd.example+json",
			nil,
			header.ContentType{Type: "application", Subtype: "vnd.example", Suffix: "json"},
			nil,
		},
		{
			"suffix splits at last plus",
			"application/vnd.example+2+xml",
			nil,
			header.ContentType{Type: "application", Subtype: "vnd.example+2", Suffix: "xml"},
			nil,
		},
		{
			"quoted param",
			`text/plain; note="hi there"`,
			nil,
			header.ContentType{
				Type:    "text",
				Subtype: "plain",
				Params:  make(header.Values).Set("note", "hi there"),
			},
			nil,
		},
		{
			"comments",
			"text/plain (demo); charset=us-ascii (ASCII)",
			nil,
			header.ContentType{
				Type:    "text",
				Subtype: "plain",
				Params:  make(header.Values).Set("charset", "us-ascii"),
			},
			nil,
		},
		{
			"comment containing semicolon",
			"text/plain (a;note); charset=utf-8",
			nil,
			header.ContentType{
				Type:    "text",
				Subtype: "plain",
				Params:  make(header.Values).Set("charset", "utf-8"),
			},
			nil,
		},
		{
			"wildcard",
			"*/*; q=0.1",
			nil,
			header.ContentType{
				Type:    "*",
				Subtype: "*",
				Params:  make(header.Values).Set("q", "0.1"),
			},
			nil,
		},
		{
			"skips segment without equals",
			"text/plain; flowed; charset=us-ascii",
			nil,
			header.ContentType{
				Type:    "text",
				Subtype: "plain",
				Params:  make(header.Values).Set("charset", "us-ascii"),
			},
			nil,
		},
		{
			"strict rejects segment without equals",
			"text/plain; flowed",
			&header.ParseOptions{Strict: true},
			header.ContentType{},
			header.ErrStrictViolation,
		},
		{"empty", "", nil, header.ContentType{}, header.ErrMalformedValue},
		{"no subtype", "text", nil, header.ContentType{}, header.ErrMalformedValue},
		{"empty subtype", "text/", nil, header.ContentType{}, header.ErrMalformedValue},
		{"invalid type", "te xt/plain", nil, header.ContentType{}, header.ErrMalformedValue},
		{
			"unterminated quote",
			`text/plain; note="oops`,
			nil,
			header.ContentType{},
			header.ErrMalformedValue,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseContentType(c.in, c.opts)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("ParseContentType(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("ParseContentType(%q) mismatch (-want +got):\n%s", c.in, diff)
			}
		})
	}
}

func TestContentType_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ct   header.ContentType
		opts *header.RenderOptions
		want string
	}{
		{"plain", header.ContentType{Type: "text", Subtype: "plain"}, nil, "text/plain"},
		{
			"suffix",
			header.ContentType{Type: "application", Subtype: "vnd.example", Suffix: "json"},
			nil,
			"application/vnd.example+json",
		},
		{
			"params sorted",
			header.ContentType{
				Type:    "text",
				Subtype: "plain",
				Params:  make(header.Values).Set("format", "flowed").Set("charset", "us-ascii"),
			},
			nil,
			"text/plain; charset=us-ascii; format=flowed",
		},
		{
			"quotes non-token value",
			header.ContentType{
				Type:    "text",
				Subtype: "plain",
				Params:  make(header.Values).Set("note", "hi there"),
			},
			nil,
			`text/plain; note="hi there"`,
		},
		{
			"compact",
			header.ContentType{
				Type:    "text",
				Subtype: "plain",
				Params:  make(header.Values).Set("charset", "us-ascii"),
			},
			&header.RenderOptions{Compact: true},
			"text/plain;charset=us-ascii",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.ct.Render(c.opts); got != c.want {
				t.Errorf("ct.Render() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestContentType_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []header.ContentType{
		{Type: "text", Subtype: "plain"},
		{Type: "application", Subtype: "vnd.example", Suffix: "json"},
		{
			Type:    "text",
			Subtype: "plain",
			Params:  make(header.Values).Set("charset", "us-ascii").Set("note", "semi;colon"),
		},
	}

	for _, ct := range cases {
		t.Run(ct.String(), func(t *testing.T) {
			t.Parallel()

			parsed, err := header.ParseContentType(ct.String(), nil)
			if err != nil {
				t.Fatalf("ParseContentType(%q) error = %v", ct.String(), err)
			}
			if got := parsed.String(); got != ct.String() {
				t.Errorf("round trip = %q, want %q", got, ct.String())
			}
		})
	}
}

func TestContentType_Quality(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ct   header.ContentType
		want float64
	}{
		{"absent", header.ContentType{Type: "text", Subtype: "plain"}, 1},
		{
			"explicit",
			header.ContentType{
				Type: "text", Subtype: "plain",
				Params: make(header.Values).Set("q", "0.5"),
			},
			0.5,
		},
		{
			"unparseable",
			header.ContentType{
				Type: "text", Subtype: "plain",
				Params: make(header.Values).Set("q", "nope"),
			},
			1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.ct.Quality(); got != c.want {
				t.Errorf("ct.Quality() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestContentType_Equal(t *testing.T) {
	t.Parallel()

	ct := header.ContentType{
		Type: "text", Subtype: "plain",
		Params: make(header.Values).Set("charset", "us-ascii"),
	}

	cases := []struct {
		name string
		val  any
		want bool
	}{
		{"same", ct, true},
		{"pointer", &ct, true},
		{
			"case insensitive",
			header.ContentType{
				Type: "Text", Subtype: "Plain",
				Params: make(header.Values).Set("charset", "US-ASCII"),
			},
			true,
		},
		{"different subtype", header.ContentType{Type: "text", Subtype: "html"}, false},
		{
			"different suffix",
			header.ContentType{Type: "text", Subtype: "plain", Suffix: "json"},
			false,
		},
		{"not a content type", "text/plain", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := ct.Equal(c.val); got != c.want {
				t.Errorf("ct.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestContentType_Clone(t *testing.T) {
	t.Parallel()

	ct := header.ContentType{
		Type: "text", Subtype: "plain",
		Params: make(header.Values).Set("charset", "us-ascii"),
	}
	ct2 := ct.Clone()
	ct2.Params.Set("charset", "utf-8")

	if v, _ := ct.Params.Last("charset"); v != "us-ascii" {
		t.Errorf("clone mutated the original: charset = %q", v)
	}
}

func TestContentType_UnmarshalText(t *testing.T) {
	t.Parallel()

	var ct header.ContentType
	if err := ct.UnmarshalText([]byte("text/html; charset=utf-8")); err != nil {
		t.Fatalf("UnmarshalText error = %v", err)
	}
	want := header.ContentType{
		Type: "text", Subtype: "html",
		Params: make(header.Values).Set("charset", "utf-8"),
	}
	if diff := cmp.Diff(want, ct); diff != "" {
		t.Errorf("UnmarshalText mismatch (-want +got):\n%s", diff)
	}

	if err := ct.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil) error = %v", err)
	}
	if !ct.IsZero() {
		t.Errorf("UnmarshalText(nil) = %v, want zero value", ct)
	}

	if err := ct.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) expected error")
	}
}
