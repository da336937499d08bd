// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"rsc.io/markdown"
)

// layoutID is the template that wraps every page.
const layoutID = "layout"

// contentKey is the key under which the rendered page is passed to the layout.
const contentKey = "content"

// Data is a data record passed to templates.
type Data map[string]any

// With returns a copy of d with key set to v. d itself is not modified.
func (d Data) With(key string, v any) Data {
	nd := maps.Clone(d)
	if nd == nil {
		nd = make(Data, 1)
	}
	nd[key] = v
	return nd
}

// Renderer renders pages from templates in a directory. A template with ID
// "blog/post" is read from blog/post.html relative to that directory.
//
// Templates are executed with missingkey=error, so a template referring to a
// value the data record doesn't carry fails instead of rendering "<no value>".
type Renderer struct {
	root      string
	funcs     template.FuncMap
	templates map[string]*template.Template
}

// NewRenderer returns a Renderer for templates in root. funcs are added to
// the default template functions.
func NewRenderer(root string, funcs template.FuncMap) *Renderer {
	r := &Renderer{
		root: root,
		funcs: template.FuncMap{
			"join":       strings.Join,
			"formatDate": formatDate,
		},
		templates: make(map[string]*template.Template),
	}
	maps.Copy(r.funcs, funcs)
	return r
}

func formatDate(layout string, t time.Time) string {
	return t.Format(layout)
}

// Render renders the template id with data, then renders the layout with a
// copy of data that has the result under the "content" key.
func (r *Renderer) Render(id string, data Data) (string, error) {
	return r.RenderLayout(layoutID, id, data)
}

// RenderLayout is like Render, but wraps the page in the given layout.
func (r *Renderer) RenderLayout(layout, id string, data Data) (string, error) {
	body, err := r.execute(id, data)
	if err != nil {
		return "", err
	}
	return r.execute(layout, data.With(contentKey, template.HTML(body)))
}

func (r *Renderer) execute(id string, data Data) (string, error) {
	tpl, err := r.lookup(id)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: failed to execute template %q: %v", ErrTemplate, id, err)
	}
	return buf.String(), nil
}

func (r *Renderer) lookup(id string) (*template.Template, error) {
	if tpl, ok := r.templates[id]; ok {
		return tpl, nil
	}

	path := filepath.Join(r.root, filepath.FromSlash(id)+".html")
	bb, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no such template %q", ErrTemplate, id)
	} else if err != nil {
		return nil, fmt.Errorf("%w: failed to read template %q: %v", ErrTemplate, id, err)
	}

	tpl, err := template.New(id).Funcs(r.funcs).Option("missingkey=error").Parse(string(bb))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template %q: %v", ErrTemplate, id, err)
	}
	r.templates[id] = tpl
	return tpl, nil
}

func newMarkdownParser() *markdown.Parser {
	return &markdown.Parser{
		HeadingID:          true,
		Strikethrough:      true,
		TaskList:           true,
		AutoLinkText:       true,
		AutoLinkAssumeHTTP: true,
		Table:              true,
		Emoji:              true,
		SmartDot:           true,
		SmartDash:          true,
		SmartQuote:         true,
		Footnote:           true,
	}
}

var htmlCommentRe = regexp.MustCompile("<!--(.*?)-->")

// toHTML converts a Markdown body to HTML and strips HTML comments from it.
func toHTML(p *markdown.Parser, body string) template.HTML {
	doc := p.Parse(body)
	out := htmlCommentRe.ReplaceAllString(markdown.ToHTML(doc), "")
	return template.HTML(out)
}

type minifier struct {
	m *minify.M
}

func newMinifier() *minifier {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags:    true,
		KeepDefaultAttrVals: true,
		KeepEndTags:         true,
	})
	return &minifier{m: m}
}

func (m *minifier) HTML(b []byte) ([]byte, error) {
	return m.m.Bytes("text/html", b)
}
