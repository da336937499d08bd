// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"context"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"go.astrophena.name/base/logger"
	"rsc.io/markdown"
)

// blogKind is the content kind of posts. It is also the directory of the blog
// in the generated site.
const blogKind = "blog"

// Crumb is a breadcrumb navigation entry.
type Crumb struct {
	Text string
	URL  string
}

// siteInfo is the common site metadata available to templates as .site.
type siteInfo struct {
	Name        string
	Description string
	URL         string
}

// pageRequest describes a single page to render and write.
type pageRequest struct {
	TemplateID string
	LayoutID   string
	Data       Data
	Output     string // relative to the output directory, slash-separated
}

type buildContext struct {
	c     *Config
	stage stage
	md    *markdown.Parser
	r     *Renderer
	min   *minifier

	docs  []*Document   // in directory listing order
	index []ListingItem // newest first
}

func newBuildContext(c *Config) *buildContext {
	b := &buildContext{
		c:   c,
		md:  newMarkdownParser(),
		min: newMinifier(),
	}
	b.r = NewRenderer(c.templatesDir(), template.FuncMap{
		"url": c.absURL,
	})
	return b
}

func (b *buildContext) synchronize(ctx context.Context) error {
	return Synchronize(ctx, b.c.Dst)
}

// readContent reads posts and builds the blog index. Every page depends on
// them, so a malformed post fails the build before any page is written.
func (b *buildContext) readContent() error {
	docs, err := ReadDocuments(b.c.contentDir(blogKind))
	if err != nil {
		return err
	}
	b.docs = docs
	b.index = BuildIndex(docs, blogKind)
	return nil
}

// pageData returns the data record shared by all pages.
func (b *buildContext) pageData(meta PageMeta, canonicalURL, ogType string, breadcrumb []Crumb) Data {
	return Data{
		"site": siteInfo{
			Name:        b.c.Name,
			Description: b.c.Description,
			URL:         b.c.absURL(""),
		},
		"title":        meta.Title,
		"description":  meta.Description,
		"keywords":     meta.Keywords,
		"canonicalURL": canonicalURL,
		"ogType":       ogType,
		"breadcrumb":   breadcrumb,
	}
}

func (b *buildContext) emitHome(ctx context.Context) error {
	if err := b.readContent(); err != nil {
		return err
	}
	data := b.pageData(b.c.Home, b.c.absURL(""), "website", nil)
	return b.emit(ctx, pageRequest{
		TemplateID: "index",
		LayoutID:   layoutID,
		Data:       data.With("posts", b.index),
		Output:     "index.html",
	})
}

func (b *buildContext) blogCrumbs() []Crumb {
	return []Crumb{
		{Text: "Home", URL: "/"},
		{Text: "Blog", URL: "/" + blogKind + "/"},
	}
}

func (b *buildContext) emitBlogIndex(ctx context.Context) error {
	data := b.pageData(b.c.Blog, b.c.absURL("/"+blogKind+"/"), "website", b.blogCrumbs())
	return b.emit(ctx, pageRequest{
		TemplateID: path.Join(blogKind, "index"),
		LayoutID:   layoutID,
		Data:       data.With("posts", b.index),
		Output:     path.Join(blogKind, "index.html"),
	})
}

func (b *buildContext) emitPosts(ctx context.Context) error {
	for _, d := range b.docs {
		if err := b.emit(ctx, b.postRequest(d)); err != nil {
			return err
		}
	}
	return nil
}

func (b *buildContext) postRequest(d *Document) pageRequest {
	u := path.Join("/", blogKind, d.Slug())

	keywords := d.Meta.Keywords
	if len(keywords) == 0 {
		keywords = b.c.PostKeywords
	}
	meta := PageMeta{
		Title:       d.Meta.Title,
		Description: d.Meta.Description,
		Keywords:    keywords,
	}
	crumbs := append(b.blogCrumbs(), Crumb{Text: d.Meta.Title, URL: u})

	data := b.pageData(meta, b.c.absURL(u), "article", crumbs)
	data["date"] = d.Meta.Date
	data[contentKey] = toHTML(b.md, d.Body)

	return pageRequest{
		TemplateID: path.Join(blogKind, "post"),
		LayoutID:   layoutID,
		Data:       data,
		Output:     path.Join(blogKind, d.Slug()),
	}
}

// emit renders req and writes it, creating missing parent directories and
// replacing any existing file.
func (b *buildContext) emit(ctx context.Context, req pageRequest) error {
	out, err := b.r.RenderLayout(req.LayoutID, req.TemplateID, req.Data)
	if err != nil {
		return err
	}

	buf := []byte(out)
	if b.c.Minify {
		buf, err = b.min.HTML(buf)
		if err != nil {
			return err
		}
	}

	dst := filepath.Join(b.c.Dst, filepath.FromSlash(req.Output))
	if err := writeFile(dst, buf); err != nil {
		return err
	}
	logger.Info(ctx, "wrote page", slog.String("path", req.Output), slog.String("template", req.TemplateID))
	return nil
}

func writeFile(dst string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ioError(err)
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return ioError(err)
	}
	return nil
}
