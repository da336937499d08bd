// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.astrophena.name/base/logger"
)

// PreservedPaths are the names of files and directories in the root of the
// output directory that are never removed by a build.
var PreservedPaths = []string{
	"assets",
	".git",
	"manifest.json",
	"robots.txt",
	"CNAME",
}

// generatedExt is the extension of generated pages.
const generatedExt = ".html"

// Synchronize prepares dst for a build. If dst exists, pages generated by a
// previous build in its root (entries ending in .html) are removed, unless
// they are listed in PreservedPaths. Anything else is left alone. If dst
// doesn't exist, it is created.
//
// Only the root of dst is cleaned, pages in subdirectories are overwritten by
// the build.
func Synchronize(ctx context.Context, dst string) error {
	entries, err := os.ReadDir(dst)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return ioError(err)
		}
		return nil
	} else if err != nil {
		return ioError(err)
	}

	for _, e := range entries {
		name := e.Name()
		if slices.Contains(PreservedPaths, name) || !strings.HasSuffix(name, generatedExt) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dst, name)); err != nil {
			return ioError(err)
		}
		logger.Info(ctx, "removed stale output", slog.String("path", name))
	}
	return nil
}
