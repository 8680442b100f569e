// Package catalog builds and holds the in-memory article index. The
// directory tree is the data store: dated directories under the content
// root, one published or draft Markdown file per date.
package catalog

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"gitblog/blog/metadata"
	"gitblog/blog/models"
	"gitblog/blog/walker"
)

// datePathRegex recognizes the fixed-width YYYY/MM/DD convention. Anything
// that does not match all three components is excluded, never coerced.
var datePathRegex = regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})$`)

// publishHour: article dates are pinned to 12:00 UTC on the day named by the
// directory, month taken exactly as written (1-based).
const publishHour = 12

// Catalog maps date-path to article record. It is immutable once built;
// reloads produce a whole new Catalog.
type Catalog map[string]*models.Article

// Published returns non-draft articles, newest date-path first.
func (c Catalog) Published() []*models.Article {
	var out []*models.Article
	for _, a := range c {
		if !a.IsDraft {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DatePath > out[j].DatePath })
	return out
}

// Options are the filename and default conventions the builder interprets
// scanned paths against.
type Options struct {
	DataDir          string
	IndexName        string
	DraftName        string
	DefaultTitle     string
	DefaultThumbnail string
	ThumbnailTag     string
}

// Builder scans the content root and assembles a Catalog.
type Builder struct {
	fsys      afero.Fs
	opts      Options
	extractor *metadata.Extractor
	logger    *slog.Logger
}

func NewBuilder(fsys afero.Fs, opts Options, logger *slog.Logger) *Builder {
	return &Builder{
		fsys:      fsys,
		opts:      opts,
		extractor: metadata.New(opts.ThumbnailTag),
		logger:    logger,
	}
}

// Build walks the content root and produces a fresh catalog. The build is
// all-or-nothing: a scan failure or any metadata read failure returns an
// error and no catalog. Zero matching files is an empty catalog, not an
// error.
func (b *Builder) Build(ctx context.Context) (Catalog, error) {
	files, err := walker.Walk(ctx, b.fsys, b.opts.DataDir)
	if err != nil {
		return nil, err
	}

	winners := b.resolve(files)

	var (
		mu  sync.Mutex
		cat = make(Catalog, len(winners))
	)
	g, ctx := errgroup.WithContext(ctx)
	for datePath, file := range winners {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			article, err := b.synthesize(datePath, file)
			if err != nil {
				return err
			}
			mu.Lock()
			cat[datePath] = article
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.logger.Info("catalog built", "articles", len(cat))
	return cat, nil
}

// candidate is one article source file before draft precedence is applied.
type candidate struct {
	path    string
	isDraft bool
}

// resolve filters scanned paths down to one winning file per date-path.
// Published beats draft regardless of scan order.
func (b *Builder) resolve(files []string) map[string]candidate {
	winners := make(map[string]candidate)
	prefix := b.opts.DataDir + "/"
	for _, file := range files {
		rel := strings.TrimPrefix(file, prefix)
		if rel == file {
			continue
		}
		dir, base := path.Split(rel)
		dir = strings.TrimSuffix(dir, "/")
		if !datePathRegex.MatchString(dir) {
			continue
		}
		isDraft := base == b.opts.DraftName
		if !isDraft && base != b.opts.IndexName {
			continue
		}
		if prev, ok := winners[dir]; ok && !prev.isDraft {
			continue
		}
		if prev, ok := winners[dir]; !ok || prev.isDraft && !isDraft {
			winners[dir] = candidate{path: file, isDraft: isDraft}
		}
	}
	return winners
}

// synthesize builds the full article record for one winning file.
func (b *Builder) synthesize(datePath string, c candidate) (*models.Article, error) {
	meta, err := b.extractor.ExtractFile(b.fsys, c.path)
	if err != nil {
		return nil, err
	}

	parts := datePathRegex.FindStringSubmatch(datePath)
	year, _ := strconv.Atoi(parts[1])
	month, _ := strconv.Atoi(parts[2])
	day, _ := strconv.Atoi(parts[3])

	title := meta.Title
	if title == "" {
		title = b.opts.DefaultTitle
	}
	thumbnail := meta.Thumbnail
	if thumbnail == "" {
		thumbnail = b.opts.DefaultThumbnail
	} else {
		thumbnail = path.Join("/", datePath, thumbnail)
	}

	slug := Slugify(title)
	return &models.Article{
		DatePath:     datePath,
		RealPath:     path.Dir(c.path),
		IsDraft:      c.isDraft,
		Year:         year,
		Month:        month,
		Day:          day,
		Date:         time.Date(year, time.Month(month), day, publishHour, 0, 0, 0, time.UTC),
		Title:        title,
		Thumbnail:    thumbnail,
		EscapedTitle: slug,
		URL:          "/" + datePath + "/" + slug,
	}, nil
}
