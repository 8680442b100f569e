package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"gitblog/blog/catalog"
	"gitblog/blog/config"
	"gitblog/blog/feed"
	"gitblog/blog/hits"
	"gitblog/blog/pipeline"
	"gitblog/blog/renderer"
	"gitblog/blog/renderer/native"
	"gitblog/blog/robots"
	"gitblog/internal/server"
)

func main() {
	command := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "serve":
		serve(args)
	case "render":
		render(args)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: gitblog <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve          Start the blog server (default)")
	fmt.Println("  render <file>  Render one Markdown file to HTML on stdout")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nFlags:")
	fmt.Println("  -config        Path to the configuration file")
}

func serve(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "Path to the configuration file")
	_ = fs.Parse(args)

	fsys := afero.NewOsFs()
	cfg := config.Load(fsys, *configPath)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fmt.Printf("🚀 gitblog starting: %s\n", cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	builder := catalog.NewBuilder(fsys, catalog.Options{
		DataDir:          cfg.DataDir,
		IndexName:        cfg.Article.Index,
		DraftName:        cfg.Article.Draft,
		DefaultTitle:     cfg.Article.DefaultTitle,
		DefaultThumbnail: cfg.Article.DefaultThumbnail,
		ThumbnailTag:     cfg.Article.ThumbnailTag,
	}, logger)

	store := catalog.NewStore()
	if err := store.Reload(ctx, builder); err != nil {
		log.Printf("⚠️ initial catalog build failed, serving empty catalog: %v", err)
	}

	engine := native.New()
	rend := renderer.New(fsys, pipeline.New(cfg, engine, engine))

	rssFeed := feed.New(feed.Options{
		Title:       cfg.RSS.Title,
		Description: cfg.RSS.Description,
		Length:      cfg.RSS.Length,
		BaseURL:     cfg.BaseURL,
	}, store)

	var counter *hits.Counter
	if cfg.Modules.HitCounter {
		var err error
		counter, err = hits.Open(cfg.HitCounter.DBPath, cfg.VisitorTimeout())
		if err != nil {
			log.Printf("⚠️ hit counter disabled: %v", err)
		} else {
			defer counter.Close()
		}
	}

	var detector *robots.Detector
	if cfg.Modules.Robots {
		detector = robots.New(fsys, cfg.Robots.ListURL, cfg.Robots.ListFile)
		if err := detector.Load(ctx); err != nil {
			log.Printf("⚠️ robot detection degraded, counting everyone: %v", err)
		} else {
			log.Printf("🤖 loaded %d robot patterns", detector.Count())
		}
	}

	srv := server.New(cfg, fsys, store, builder, rend, rssFeed, counter, detector, logger)
	if err := srv.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

// render is the one-shot pipeline runner, handy for previewing an article
// without starting the server.
func render(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath, "Path to the configuration file")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Println("Usage: gitblog render [-config file] <article.md>")
		os.Exit(1)
	}

	fsys := afero.NewOsFs()
	cfg := config.Load(fsys, *configPath)

	engine := native.New()
	rend := renderer.New(fsys, pipeline.New(cfg, engine, engine))

	html, err := rend.RenderFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("render failed: %v", err)
	}
	fmt.Println(html)
}
