package header_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dave-shawley/ietfparse/header"
)

func TestParseList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "gzip, deflate, br", []string{"gzip", "deflate", "br"}},
		{"empty elements dropped", "a,, ,b", []string{"a", "b"}},
		{
			"quoted comma kept",
			`"Sat, 04 Jan 2014", "Sun, 05 Jan 2014"`,
			[]string{"Sat, 04 Jan 2014", "Sun, 05 Jan 2014"},
		},
		{"unquoted elements untouched", `a, "b", c`, []string{"a", "b", "c"}},
		{"empty", "", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := header.ParseList(c.in)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("ParseList(%q) mismatch (-want +got):\n%s", c.in, diff)
			}
		})
	}
}
