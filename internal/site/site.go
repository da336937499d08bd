// © 2022 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package site builds https://bold-brew.com.

# Directory Structure

Site has the following directories:

	docs                This is where the generated site will be placed by
	                    default. Hand-placed files (see PreservedPaths) survive
	                    rebuilds.
	site/content/blog   Blog posts in Markdown with YAML front matter.
	site/templates      Templates. The layout template wraps all others.
	                    They must have the '.html' extension.

# Post Layout

Each post must be a Markdown file and may start with YAML front matter:

	---
	title: Hello, world!
	description: Short summary used as the excerpt.
	keywords: homebrew, macos
	date: 2024-03-01
	---

Posts without a title or a date are drafts: their pages are built, but they are
left out of the blog index, the sitemap and the feed.

# Output Layout

	index.html         home page (template "index")
	blog/index.html    blog index (template "blog/index")
	blog/<slug>.html   one page per post (template "blog/post")
	sitemap.xml        sitemap of static routes and listed posts
	feed.xml           Atom feed of listed posts
*/
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.astrophena.name/base/logger"
)

// Possible errors. Every error returned by Build wraps one of them.
var (
	// ErrMalformedDocument is returned when a content document can't be
	// parsed: its front matter is opened but never closed, isn't valid YAML or
	// carries an unreadable date.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrTemplate is returned when a template can't be found, parsed or
	// executed.
	ErrTemplate = errors.New("template error")
	// ErrIO is returned when reading, writing or removing files fails.
	ErrIO = errors.New("I/O failure")
)

func ioError(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// Config represents a build configuration.
type Config struct {
	// Name is the name of the site.
	Name string
	// Description is the description of the site.
	Description string
	// BaseURL is the base URL of the site.
	BaseURL *url.URL
	// Src is the directory where to read templates and content from. If empty,
	// uses the site directory.
	Src string
	// Dst is the directory where to write files. If empty, uses the docs
	// directory.
	Dst string
	// Home holds SEO metadata of the home page.
	Home PageMeta
	// Blog holds SEO metadata of the blog index.
	Blog PageMeta
	// PostKeywords are used for posts that don't declare their own keywords.
	PostKeywords []string
	// Date is used as the last modification date of static routes in the
	// sitemap. If zero, the current date is used.
	Date time.Time
	// Minify determines if generated pages should be minified.
	Minify bool
	// SkipFeed determines if the feed for site shouldn't be built.
	SkipFeed bool
}

// PageMeta is SEO metadata of a page that has no front matter.
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
}

// withDefaults returns a copy of c with empty fields filled in. c itself is
// left as is.
func (c *Config) withDefaults() *Config {
	var cc Config
	if c != nil {
		cc = *c
	}

	if cc.Name == "" {
		cc.Name = "Bold Brew"
	}
	if cc.Description == "" {
		cc.Description = "A modern TUI for Homebrew"
	}
	if cc.BaseURL == nil {
		cc.BaseURL = &url.URL{
			Scheme: "https",
			Host:   "bold-brew.com",
		}
	}
	if cc.Src == "" {
		cc.Src = filepath.Join(".", "site")
	}
	if cc.Dst == "" {
		cc.Dst = filepath.Join(".", "docs")
	}

	if cc.Home.Title == "" {
		cc.Home.Title = "Bold Brew (bbrew) - Modern Homebrew TUI Manager for macOS and Linux"
	}
	if cc.Home.Description == "" {
		cc.Home.Description = "Bold Brew (bbrew) is the modern Terminal User Interface for Homebrew on macOS and Linux. Install, update, and manage packages and casks with an elegant TUI."
	}
	if cc.Home.Keywords == nil {
		cc.Home.Keywords = []string{
			"bbrew", "Bold Brew", "Homebrew TUI", "macOS package manager",
			"Linux package manager", "Homebrew casks", "Homebrew GUI",
			"terminal package manager", "Homebrew alternative", "Project Bluefin",
			"macOS development tools", "Linux development tools",
		}
	}
	if cc.Blog.Title == "" {
		cc.Blog.Title = "Blog | Bold Brew (bbrew)"
	}
	if cc.Blog.Description == "" {
		cc.Blog.Description = "Tips, tutorials, and guides for managing Homebrew packages on macOS"
	}
	if cc.Blog.Keywords == nil {
		cc.Blog.Keywords = []string{"Homebrew blog", "macOS tutorials", "package management", "Bold Brew guides"}
	}
	if cc.PostKeywords == nil {
		cc.PostKeywords = []string{
			"Homebrew", "macOS", "package management", "Bold Brew", "bbrew",
			"terminal", "development tools",
		}
	}

	if cc.Date.IsZero() {
		now := time.Now().UTC()
		cc.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	return &cc
}

func (c *Config) templatesDir() string { return filepath.Join(c.Src, "templates") }

func (c *Config) contentDir(kind string) string { return filepath.Join(c.Src, "content", kind) }

// absURL joins the site base URL with p. The base URL never ends with a slash,
// so the home page is absURL("") and everything else starts with "/".
func (c *Config) absURL(p string) string {
	return strings.TrimSuffix(c.BaseURL.String(), "/") + p
}

// stage is a step of the build.
type stage int

const (
	stageIdle stage = iota
	stageSynchronizing
	stageEmittingHome
	stageEmittingCollectionIndex
	stageEmittingItems
	stageEmittingSitemap
	stageEmittingFeed
	stageDone
	stageFailed
)

var stageNames = map[stage]string{
	stageIdle:                    "idle",
	stageSynchronizing:           "synchronizing output",
	stageEmittingHome:            "emitting home page",
	stageEmittingCollectionIndex: "emitting blog index",
	stageEmittingItems:           "emitting posts",
	stageEmittingSitemap:         "emitting sitemap",
	stageEmittingFeed:            "emitting feed",
	stageDone:                    "done",
	stageFailed:                  "failed",
}

func (s stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Build builds a site based on the provided [Config].
//
// Steps run strictly in order and the first error aborts the build. Pages
// written before the failure are left on disk.
func Build(ctx context.Context, c *Config) error {
	b := newBuildContext(c.withDefaults())

	steps := []struct {
		stage stage
		run   func(context.Context) error
	}{
		{stageSynchronizing, b.synchronize},
		{stageEmittingHome, b.emitHome},
		{stageEmittingCollectionIndex, b.emitBlogIndex},
		{stageEmittingItems, b.emitPosts},
		{stageEmittingSitemap, b.emitSitemap},
	}
	if !b.c.SkipFeed {
		steps = append(steps, struct {
			stage stage
			run   func(context.Context) error
		}{stageEmittingFeed, b.emitFeed})
	}

	for _, step := range steps {
		b.stage = step.stage
		logger.Info(ctx, "build step", slog.String("stage", step.stage.String()))
		if err := step.run(ctx); err != nil {
			b.stage = stageFailed
			return fmt.Errorf("%s: %w", step.stage, err)
		}
	}
	b.stage = stageDone

	logger.Info(ctx, "build completed",
		slog.String("dst", b.c.Dst),
		slog.Int("posts", len(b.docs)),
		slog.Int("listed", len(b.index)),
	)
	return nil
}
