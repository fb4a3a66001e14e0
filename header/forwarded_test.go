package header_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dave-shawley/ietfparse/header"
)

func TestParseForwarded(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []header.Values
	}{
		{
			"single hop",
			"for=192.0.2.60;proto=http;by=203.0.113.43",
			[]header.Values{
				make(header.Values).Set("for", "192.0.2.60").Set("proto", "http").Set("by", "203.0.113.43"),
			},
		},
		{
			"multiple hops",
			`for=192.0.2.43, for="[2001:db8:cafe::17]"`,
			[]header.Values{
				make(header.Values).Set("for", "192.0.2.43"),
				make(header.Values).Set("for", "[2001:db8:cafe::17]"),
			},
		},
		{
			"keeps value case",
			"for=_SEVKISEK;proto=HTTPS",
			[]header.Values{
				make(header.Values).Set("for", "_SEVKISEK").Set("proto", "HTTPS"),
			},
		},
		{
			"extension param",
			"for=192.0.2.60;secret=ruewi",
			[]header.Values{
				make(header.Values).Set("for", "192.0.2.60").Set("secret", "ruewi"),
			},
		},
		{"empty", "", []header.Values{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := header.ParseForwarded(c.in, nil)
			if err != nil {
				t.Fatalf("ParseForwarded(%q) error = %v", c.in, err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("ParseForwarded(%q) mismatch (-want +got):\n%s", c.in, diff)
			}
		})
	}
}

func TestParseForwarded_StandardParamsOnly(t *testing.T) {
	t.Parallel()

	opts := &header.ParseOptions{StandardParamsOnly: true}

	if _, err := header.ParseForwarded("for=192.0.2.60;proto=http", opts); err != nil {
		t.Errorf("standard params rejected: %v", err)
	}

	_, err := header.ParseForwarded("for=192.0.2.60;secret=ruewi", opts)
	if !errors.Is(err, header.ErrStrictViolation) {
		t.Errorf("error = %v, want %v", err, header.ErrStrictViolation)
	}
}

func TestParseForwarded_Malformed(t *testing.T) {
	t.Parallel()

	_, err := header.ParseForwarded(`for="unterminated`, nil)
	if !errors.Is(err, header.ErrMalformedValue) {
		t.Errorf("error = %v, want %v", err, header.ErrMalformedValue)
	}
}
