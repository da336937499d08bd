// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSynchronize(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "a", "docs")
		if err := Synchronize(context.Background(), dst); err != nil {
			t.Fatal(err)
		}
		fi, err := os.Stat(dst)
		if err != nil {
			t.Fatal(err)
		}
		if !fi.IsDir() {
			t.Fatalf("%s is not a directory", dst)
		}
	})

	t.Run("removes generated pages", func(t *testing.T) {
		dst := t.TempDir()
		for _, name := range []string{
			"old.html",
			"index.html",
			"gone.html/inner.txt",
			"robots.txt",
			"CNAME",
			"manifest.json",
			"assets/app.js",
			".git/config",
			"sitemap.xml",
			"blog/post.html",
			"notes.txt",
		} {
			writeTestFile(t, filepath.Join(dst, filepath.FromSlash(name)), name)
		}

		if err := Synchronize(context.Background(), dst); err != nil {
			t.Fatal(err)
		}

		for _, name := range []string{"old.html", "index.html", "gone.html"} {
			if _, err := os.Stat(filepath.Join(dst, name)); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("%s: want removed, got %v", name, err)
			}
		}
		for _, name := range []string{
			"robots.txt",
			"CNAME",
			"manifest.json",
			"assets/app.js",
			".git/config",
			"sitemap.xml",
			"blog/post.html",
			"notes.txt",
		} {
			if _, err := os.Stat(filepath.Join(dst, filepath.FromSlash(name))); err != nil {
				t.Errorf("%s: want kept, got %v", name, err)
			}
		}
	})

	t.Run("not a directory", func(t *testing.T) {
		dst := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(dst, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := Synchronize(context.Background(), dst); !errors.Is(err, ErrIO) {
			t.Fatalf("want %v, got %v", ErrIO, err)
		}
	})
}
