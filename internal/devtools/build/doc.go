// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Build builds the site.

# Usage

	$ go tool build [flags] [dir]

Builds the site into the specified directory dir. If dir is not provided,
it defaults to docs in the current working directory.

Generated pages in the root of dir are replaced on every build, while the
assets and .git directories, manifest.json, robots.txt and CNAME are kept.

# Configuration

Site name, URL and page metadata are read from the YAML file given with
-config, or from site.yaml if it exists. Flags override the file.

On failure the error is printed and the exit status is 1.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
