// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk form of Config.
type fileConfig struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	URL          string       `yaml:"url"`
	Src          string       `yaml:"src"`
	Dst          string       `yaml:"dst"`
	Home         filePageMeta `yaml:"home"`
	Blog         filePageMeta `yaml:"blog"`
	PostKeywords []string     `yaml:"post_keywords"`
	SkipFeed     bool         `yaml:"skip_feed"`
}

type filePageMeta struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

// LoadConfig reads a YAML site configuration from path. Fields that the file
// doesn't set are left empty and get their defaults at build time.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(b)
}

// ParseConfig parses a YAML site configuration.
func ParseConfig(b []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	c := &Config{
		Name:         fc.Name,
		Description:  fc.Description,
		Src:          fc.Src,
		Dst:          fc.Dst,
		Home:         PageMeta(fc.Home),
		Blog:         PageMeta(fc.Blog),
		PostKeywords: fc.PostKeywords,
		SkipFeed:     fc.SkipFeed,
	}
	if fc.URL != "" {
		u, err := ParseBaseURL(fc.URL)
		if err != nil {
			return nil, err
		}
		c.BaseURL = u
	}
	return c, nil
}

// ParseBaseURL parses an absolute site URL such as https://bold-brew.com.
func ParseBaseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %q: %w", s, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("invalid site URL %q: must be absolute", s)
	}
	return u, nil
}
