// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package devtools contains common functionality for development tools.
package devtools

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.astrophena.name/base/unwrap"
)

// EnsureSiteRoot checks that src, resolved against the current working
// directory, contains site templates.
func EnsureSiteRoot(src string) error {
	if !filepath.IsAbs(src) {
		src = filepath.Join(unwrap.Value(os.Getwd()), src)
	}
	st, err := os.Stat(filepath.Join(src, "templates"))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s has no templates directory. Are you at site root?", src)
	} else if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s: templates is not a directory", src)
	}
	return nil
}
