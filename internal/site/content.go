// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// sourceExt is the extension of content documents.
const sourceExt = ".md"

// Document is a parsed content document.
type Document struct {
	Name string   // file name, e.g. hello.md
	Path string   // path to the document source
	Meta Metadata // front matter
	Body string   // document body without front matter, as written
}

// Slug returns the file name of the generated page for d.
func (d *Document) Slug() string {
	return strings.TrimSuffix(d.Name, sourceExt) + ".html"
}

// Metadata is the front matter of a document. The exported fields are the
// recognized front matter keys.
type Metadata struct {
	Title       string    // title: Post title.
	Description string    // description: Post summary, used as the excerpt.
	Keywords    []string  // keywords: Comma-separated string or a list.
	Date        time.Time // date: Publication date, always in UTC.

	// Params holds all front matter fields as decoded, including the
	// unrecognized ones.
	Params map[string]any
}

// HasDate reports whether the front matter carries a date.
func (m Metadata) HasDate() bool { return !m.Date.IsZero() }

// ReadDocuments parses every Markdown document in dir. Documents are returned
// in directory listing order. If dir doesn't exist, ReadDocuments returns no
// documents and no error.
func ReadDocuments(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, ioError(err)
	}

	var docs []*Document
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != sourceExt || isIgnorable(e.Name()) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, ioError(err)
		}
		doc, err := ParseDocument(path, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func isIgnorable(name string) bool {
	// Ignore files that look like Vim backups or editor lock files.
	return strings.HasSuffix(name, "~") || strings.HasPrefix(name, ".#")
}

// ParseDocument splits raw into front matter and body and decodes the front
// matter. path is used for naming the document and in errors.
func ParseDocument(path string, raw []byte) (*Document, error) {
	front, body, err := splitFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformedDocument, err)
	}

	params := make(map[string]any)
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &params); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformedDocument, err)
		}
		if params == nil {
			params = make(map[string]any)
		}
	}

	meta, err := decodeMetadata(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformedDocument, err)
	}

	return &Document{
		Name: filepath.Base(path),
		Path: path,
		Meta: meta,
		Body: string(body),
	}, nil
}

var errUnclosedFrontmatter = errors.New("front matter is opened but never closed")

// splitFrontmatter separates YAML front matter from the body. The front
// matter starts with a "---" line at the very beginning of the document and
// ends with a "---" or "..." line. If the document doesn't start with "---",
// it has no front matter and raw is returned as the body.
func splitFrontmatter(raw []byte) (front, body []byte, err error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(nil, len(raw)+1)
	scanner.Split(scanLinesKeepEOL)

	var (
		offset  int
		opened  bool
		closing bool
	)
	for scanner.Scan() {
		line := scanner.Bytes()
		offset += len(line)
		trimmed := strings.TrimRight(string(line), "\r\n")

		if !opened {
			if trimmed != "---" {
				return nil, raw, nil
			}
			opened = true
			continue
		}

		if trimmed == "---" || trimmed == "..." {
			closing = true
			break
		}
		front = append(front, line...)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if !opened {
		// Empty document.
		return nil, raw, nil
	}
	if !closing {
		return nil, nil, errUnclosedFrontmatter
	}
	return front, raw[offset:], nil
}

// scanLinesKeepEOL is like bufio.ScanLines, but keeps line endings so that
// the body can be sliced out of the original bytes.
func scanLinesKeepEOL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func decodeMetadata(params map[string]any) (Metadata, error) {
	m := Metadata{
		Title:       stringParam(params["title"]),
		Description: stringParam(params["description"]),
		Keywords:    keywordsParam(params["keywords"]),
		Params:      params,
	}

	if v, ok := params["date"]; ok && v != nil {
		d, err := parseDate(v)
		if err != nil {
			return Metadata{}, err
		}
		m.Date = d
	}

	return m, nil
}

func stringParam(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func keywordsParam(v any) []string {
	var kw []string
	switch v := v.(type) {
	case string:
		for k := range strings.SplitSeq(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				kw = append(kw, k)
			}
		}
	case []any:
		for _, k := range v {
			if s := strings.TrimSpace(stringParam(k)); s != "" {
				kw = append(kw, s)
			}
		}
	}
	return kw
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseDate normalizes a front matter date to UTC. An empty string is the same
// as no date.
func parseDate(v any) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC 3339", s)
	default:
		return time.Time{}, fmt.Errorf("invalid date %v of type %T", v, v)
	}
}
