// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"testing"
	"time"

	"go.astrophena.name/base/testutil"
)

func testDoc(name, title string, date time.Time) *Document {
	return &Document{
		Name: name,
		Meta: Metadata{Title: title, Description: "About " + title, Date: date},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildIndex(t *testing.T) {
	cases := map[string]struct {
		docs     []*Document
		wantURLs []string
	}{
		"newest first, drafts skipped": {
			docs: []*Document{
				testDoc("a.md", "A", day(2024, time.January, 1)),
				testDoc("b.md", "B", day(2024, time.March, 1)),
				testDoc("c.md", "C", time.Time{}),
			},
			wantURLs: []string{"/blog/b.html", "/blog/a.html"},
		},
		"missing title": {
			docs: []*Document{
				testDoc("a.md", "", day(2024, time.January, 1)),
				testDoc("b.md", "B", day(2023, time.January, 1)),
			},
			wantURLs: []string{"/blog/b.html"},
		},
		"equal dates keep input order": {
			docs: []*Document{
				testDoc("z.md", "Z", day(2024, time.May, 5)),
				testDoc("y.md", "Y", day(2024, time.May, 5)),
				testDoc("x.md", "X", day(2024, time.May, 6)),
			},
			wantURLs: []string{"/blog/x.html", "/blog/z.html", "/blog/y.html"},
		},
		"no documents": {},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			items := BuildIndex(tc.docs, "blog")
			var urls []string
			for _, it := range items {
				urls = append(urls, it.URL)
			}
			testutil.AssertEqual(t, urls, tc.wantURLs)
		})
	}
}

func TestBuildIndexItem(t *testing.T) {
	items := BuildIndex([]*Document{testDoc("hello.md", "Hello", day(2024, time.March, 1))}, "blog")
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d", len(items))
	}
	it := items[0]
	testutil.AssertEqual(t, it.Title, "Hello")
	testutil.AssertEqual(t, it.URL, "/blog/hello.html")
	testutil.AssertEqual(t, it.Excerpt, "About Hello")
	if !it.Date.Equal(day(2024, time.March, 1)) {
		t.Errorf("unexpected date %v", it.Date)
	}
}
