// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"context"
	"log/slog"
	"path/filepath"

	"go.astrophena.name/base/logger"

	"github.com/gorilla/feeds"
)

// emitFeed writes an Atom feed of listed posts. The feed is dated by the
// newest post, so that it doesn't change between builds of the same content.
func (b *buildContext) emitFeed(ctx context.Context) error {
	feed := &feeds.Feed{
		Id:          b.c.absURL("/" + blogKind + "/"),
		Title:       b.c.Name,
		Description: b.c.Description,
		Link:        &feeds.Link{Href: b.c.absURL("/" + blogKind + "/")},
		Created:     b.c.Date,
	}
	if len(b.index) > 0 {
		feed.Created = b.index[0].Date
	}

	for _, it := range b.index {
		u := b.c.absURL(it.URL)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          u,
			Title:       it.Title,
			Link:        &feeds.Link{Href: u},
			Description: it.Excerpt,
			Created:     it.Date,
		})
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(b.c.Dst, "feed.xml"), []byte(atom)); err != nil {
		return err
	}
	logger.Info(ctx, "wrote feed", slog.Int("items", len(feed.Items)))
	return nil
}
