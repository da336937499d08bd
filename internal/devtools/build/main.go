// © 2022 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/brewsite/internal/devtools"
	"go.astrophena.name/brewsite/internal/site"
)

func main() { cli.Main(new(app)) }

const defaultConfig = "site.yaml"

type app struct {
	config   string
	src      string
	baseURL  string
	minify   bool
	skipFeed bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.config, "config", "", "Read site configuration from `file` (default site.yaml, if it exists).")
	fs.StringVar(&a.src, "src", "", "Read templates and content from `dir`.")
	fs.StringVar(&a.baseURL, "base-url", "", "Override the site base `URL`.")
	fs.BoolVar(&a.minify, "minify", true, "Minify generated pages.")
	fs.BoolVar(&a.skipFeed, "skip-feed", false, "Don't build the Atom feed.")
}

func (a *app) Run(ctx context.Context) error {
	c, err := a.siteConfig(cli.GetEnv(ctx).Args)
	if err != nil {
		return err
	}

	src := c.Src
	if src == "" {
		src = "site"
	}
	if err := devtools.EnsureSiteRoot(src); err != nil {
		return err
	}

	return site.Build(ctx, c)
}

// siteConfig loads the configuration file and applies flags and args on top
// of it.
func (a *app) siteConfig(args []string) (*site.Config, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("%w: want at most one output directory", cli.ErrInvalidArgs)
	}

	c, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if a.src != "" {
		c.Src = a.src
	}
	if len(args) == 1 {
		c.Dst = args[0]
	}
	if a.baseURL != "" {
		u, err := site.ParseBaseURL(a.baseURL)
		if err != nil {
			return nil, err
		}
		c.BaseURL = u
	}
	c.Minify = a.minify
	c.SkipFeed = c.SkipFeed || a.skipFeed
	return c, nil
}

func (a *app) loadConfig() (*site.Config, error) {
	if a.config != "" {
		return site.LoadConfig(a.config)
	}
	c, err := site.LoadConfig(defaultConfig)
	if errors.Is(err, os.ErrNotExist) {
		return &site.Config{}, nil
	}
	return c, err
}
