// Package walker lists every regular file under a root directory. It is
// pure traversal: paths come back flat and uninterpreted, in no particular
// order.
package walker

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Walk recursively enumerates regular files beneath root. Sibling
// directories are scanned concurrently; the call returns only once every
// descent has finished. Any unreadable directory fails the whole traversal
// with no partial list.
func Walk(ctx context.Context, fsys afero.Fs, root string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return walkDir(ctx, g, fsys, root, &mu, &files)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func walkDir(ctx context.Context, g *errgroup.Group, fsys afero.Fs, dir string, mu *sync.Mutex, files *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("list directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		full := path.Join(dir, entry.Name())
		if entry.IsDir() {
			g.Go(func() error {
				return walkDir(ctx, g, fsys, full, mu, files)
			})
			continue
		}
		mu.Lock()
		*files = append(*files, full)
		mu.Unlock()
	}
	return nil
}
