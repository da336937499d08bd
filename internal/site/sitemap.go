// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"bytes"
	"context"
	"encoding/xml"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.astrophena.name/base/logger"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Route is a sitemap entry.
type Route struct {
	URL        string // site-relative, e.g. /blog/
	LastMod    time.Time
	ChangeFreq string  // optional
	Priority   float64 // 0.0 to 1.0
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority"`
}

// StaticRoutes returns the routes that exist regardless of content, last
// modified on date.
func StaticRoutes(date time.Time) []Route {
	return []Route{
		{URL: "/", LastMod: date, ChangeFreq: "weekly", Priority: 1.0},
		{URL: "/" + blogKind + "/", LastMod: date, ChangeFreq: "weekly", Priority: 0.9},
	}
}

// ItemRoutes returns a route for every listing item, in the same order.
func ItemRoutes(items []ListingItem) []Route {
	routes := make([]Route, 0, len(items))
	for _, it := range items {
		routes = append(routes, Route{
			URL:        it.URL,
			LastMod:    it.Date,
			ChangeFreq: "monthly",
			Priority:   0.8,
		})
	}
	return routes
}

// Sitemap returns a sitemap document for routes, in order. Locations are
// built by appending route URLs to baseURL.
func Sitemap(baseURL string, routes []Route) ([]byte, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")

	set := urlset{NS: sitemapNS}
	for _, r := range routes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + r.URL,
			LastMod:    r.LastMod.Format(time.DateOnly),
			ChangeFreq: r.ChangeFreq,
			Priority:   strconv.FormatFloat(min(max(r.Priority, 0), 1), 'f', 1, 64),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (b *buildContext) emitSitemap(ctx context.Context) error {
	routes := append(StaticRoutes(b.c.Date), ItemRoutes(b.index)...)
	sm, err := Sitemap(b.c.absURL(""), routes)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(b.c.Dst, "sitemap.xml"), sm); err != nil {
		return err
	}
	logger.Info(ctx, "wrote sitemap", slog.Int("routes", len(routes)))
	return nil
}
