// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"path"
	"sort"
	"time"
)

// ListingItem is a published document as shown on index pages, in the
// sitemap and in the feed.
type ListingItem struct {
	Title   string
	Date    time.Time
	URL     string // site-relative, e.g. /blog/hello.html
	Excerpt string
}

// BuildIndex returns listing items for docs that have both a title and a date,
// newest first. Other documents are drafts and are skipped without an error.
// URLs are built by joining prefix with the document slug.
//
// Documents with equal dates keep their order in docs, which is the directory
// listing order and can differ between filesystems.
func BuildIndex(docs []*Document, prefix string) []ListingItem {
	var items []ListingItem
	for _, d := range docs {
		if d.Meta.Title == "" || !d.Meta.HasDate() {
			continue
		}
		items = append(items, ListingItem{
			Title:   d.Meta.Title,
			Date:    d.Meta.Date,
			URL:     path.Join("/", prefix, d.Slug()),
			Excerpt: d.Meta.Description,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items
}
