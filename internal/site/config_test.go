// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.astrophena.name/base/testutil"
)

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(`
name: Example
description: An example site.
url: https://example.com/
src: web
dst: out
home:
  title: Home
  keywords: [a, b]
blog:
  description: Posts.
post_keywords: [c]
skip_feed: true
`))
	if err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, c.Name, "Example")
	testutil.AssertEqual(t, c.Description, "An example site.")
	testutil.AssertEqual(t, c.BaseURL.String(), "https://example.com/")
	testutil.AssertEqual(t, c.absURL("/blog/"), "https://example.com/blog/")
	testutil.AssertEqual(t, c.Src, "web")
	testutil.AssertEqual(t, c.Dst, "out")
	testutil.AssertEqual(t, c.Home, PageMeta{Title: "Home", Keywords: []string{"a", "b"}})
	testutil.AssertEqual(t, c.Blog, PageMeta{Description: "Posts."})
	testutil.AssertEqual(t, c.PostKeywords, []string{"c"})
	testutil.AssertEqual(t, c.SkipFeed, true)
}

func TestParseConfigErrors(t *testing.T) {
	cases := map[string]string{
		"invalid YAML":     "name: [",
		"relative URL":     "url: /blog/",
		"unparseable URL":  "url: \"https://exa mple.com/%zz\"",
		"URL without host": "url: \"file:///tmp\"",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(in)); err == nil {
				t.Fatal("want error, got nil")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "site.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("want %v, got %v", os.ErrNotExist, err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.yaml")
		writeTestFile(t, path, "")
		c, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if c.BaseURL != nil {
			t.Fatalf("want no base URL, got %v", c.BaseURL)
		}
		testutil.AssertEqual(t, c.withDefaults().BaseURL.String(), "https://bold-brew.com")
	})
}

func TestWithDefaults(t *testing.T) {
	c := &Config{Name: "Mine"}
	d := c.withDefaults()

	testutil.AssertEqual(t, d.Name, "Mine")
	testutil.AssertEqual(t, d.Src, "site")
	testutil.AssertEqual(t, d.Dst, "docs")
	testutil.AssertEqual(t, d.absURL(""), "https://bold-brew.com")
	if d.Date.IsZero() {
		t.Error("default date is zero")
	}
	testutil.AssertEqual(t, d.Date.Hour(), 0)

	// The original is left alone.
	testutil.AssertEqual(t, c.Src, "")
	if c.BaseURL != nil || !c.Date.IsZero() || c.PostKeywords != nil {
		t.Fatalf("withDefaults modified its receiver: %+v", c)
	}

	var nilConfig *Config
	testutil.AssertEqual(t, nilConfig.withDefaults().Name, "Bold Brew")
}
