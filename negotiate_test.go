package ietfparse_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dave-shawley/ietfparse"
	"github.com/dave-shawley/ietfparse/header"
)

func mustParseAccept(in string) []header.ContentType {
	GinkgoHelper()
	cts, err := header.ParseAccept(in, nil)
	Expect(err).ToNot(HaveOccurred())
	return cts
}

func mustParseContentType(in string) header.ContentType {
	GinkgoHelper()
	ct, err := header.ParseContentType(in, nil)
	Expect(err).ToNot(HaveOccurred())
	return ct
}

func availableTypes(ins ...string) []header.ContentType {
	GinkgoHelper()
	cts := make([]header.ContentType, len(ins))
	for i, in := range ins {
		cts[i] = mustParseContentType(in)
	}
	return cts
}

var _ = Describe("SelectContentType", func() {
	DescribeTable("matching", Label("matching"),
		func(accept string, available []header.ContentType, expectSelected, expectPattern string) {
			selected, pattern, err := ietfparse.SelectContentType(mustParseAccept(accept), available, nil)
			Expect(err).ToNot(HaveOccurred(), "assert negotiation succeeded")
			Expect(selected.String()).To(Equal(expectSelected), "assert the selected content type")
			Expect(pattern.String()).To(Equal(expectPattern), "assert the matched pattern")
		},
		EntryDescription("%[1]q"),
		Entry(nil, "text/html", availableTypes("text/html"), "text/html", "text/html"),
		Entry(nil,
			"application/json, text/html;q=0.9",
			availableTypes("text/html", "application/json"),
			"application/json", "application/json",
		),
		Entry(nil,
			"text/*",
			availableTypes("application/json", "text/plain"),
			"text/plain", "text/*",
		),
		Entry(nil,
			"*/*",
			availableTypes("application/json", "text/plain"),
			"application/json", "*/*",
		),
		Entry(nil,
			"", // missing Accept means anything is acceptable
			availableTypes("application/json"),
			"application/json", "*/*",
		),
		Entry(nil,
			"application/vnd.example+json",
			availableTypes("application/vnd.example+msgpack", "application/vnd.example+json"),
			"application/vnd.example+json", "application/vnd.example+json",
		),
		Entry(nil,
			"application/vnd.example+json;version=2",
			availableTypes("application/vnd.example+json;version=3", "application/vnd.example+json;version=2"),
			"application/vnd.example+json; version=2", "application/vnd.example+json; version=2",
		),
		Entry(nil,
			// params only on the requested side do not block the match
			"text/plain;format=flowed",
			availableTypes("text/plain"),
			"text/plain", "text/plain; format=flowed",
		),
		Entry(nil,
			// wildcard subtype on the requested side ignores the suffix
			"application/*",
			availableTypes("application/vnd.example+json"),
			"application/vnd.example+json", "application/*",
		),
		Entry(nil,
			// q=0 entries never match even when preferred by server order
			"text/html;q=0, application/json;q=0.5",
			availableTypes("text/html", "application/json"),
			"application/json", "application/json; q=0.5",
		),
	)

	DescribeTable("no match", Label("no match"),
		func(accept string, available []header.ContentType) {
			_, _, err := ietfparse.SelectContentType(mustParseAccept(accept), available, nil)
			Expect(err).To(MatchError(ietfparse.ErrNoMatch), "assert negotiation failed")
		},
		EntryDescription("%[1]q"),
		Entry(nil, "text/plain", availableTypes("application/json")),
		Entry(nil, "text/plain", nil),
		Entry(nil, "application/vnd.example+json;version=2", availableTypes("application/vnd.example+json;version=3")),
		Entry(nil, "application/vnd.example+json", availableTypes("application/vnd.example+msgpack")),
		Entry(nil, "text/html;q=0", availableTypes("text/html")),
	)

	It("returns the default paired with itself when nothing matches", func() {
		def := mustParseContentType("application/json")
		selected, pattern, err := ietfparse.SelectContentType(
			mustParseAccept("text/plain"),
			availableTypes("application/msgpack"),
			&ietfparse.SelectOptions{Default: &def},
		)
		Expect(err).ToNot(HaveOccurred())
		Expect(selected).To(Equal(def))
		Expect(pattern).To(Equal(def))
	})

	It("prefers the earliest available entry on ties", func() {
		selected, _, err := ietfparse.SelectContentType(
			mustParseAccept("*/*"),
			availableTypes("text/html", "text/plain"),
			nil,
		)
		Expect(err).ToNot(HaveOccurred())
		Expect(selected.String()).To(Equal("text/html"))
	})
})
