// Package config loads gitblog.yaml and fills in defaults for anything the
// file leaves out. A missing or unreadable file is not an error: the server
// runs on defaults, matching the behavior of the original deployment.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "gitblog.yaml"

type ArticleConfig struct {
	Index            string `yaml:"index"`
	Draft            string `yaml:"draft"`
	DefaultTitle     string `yaml:"default_title"`
	DefaultThumbnail string `yaml:"default_thumbnail"`
	ThumbnailTag     string `yaml:"thumbnail_tag"`
}

// ModulesConfig holds per-feature enable flags. A disabled pipeline module
// becomes an identity stage; a disabled server module is simply not wired.
type ModulesConfig struct {
	Diagrams   bool `yaml:"diagrams"`
	Math       bool `yaml:"math"`
	Highlight  bool `yaml:"highlight"`
	HitCounter bool `yaml:"hit_counter"`
	Robots     bool `yaml:"robots"`
	Watch      bool `yaml:"watch"`
}

type DiagramsConfig struct {
	// OutputFormat is "svg" (inline markup) or "img" (data-URI image tag).
	OutputFormat string `yaml:"output_format"`
}

type MathConfig struct {
	OutputFormat string `yaml:"output_format"`
	SpeakText    bool   `yaml:"speak_text"`
}

type MarkdownConfig struct {
	Autolink    bool `yaml:"autolink"`
	FrontMatter bool `yaml:"front_matter"`
	Admonitions bool `yaml:"admonitions"`
	Minify      bool `yaml:"minify"`
}

type RSSConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Length      int    `yaml:"length"`
}

type HitCounterConfig struct {
	DBPath string `yaml:"db_path"`
	// UniqueVisitorTimeout is in seconds; hits from the same address within
	// the window count as one visitor.
	UniqueVisitorTimeout int `yaml:"unique_visitor_timeout"`
}

type RobotsConfig struct {
	ListURL  string `yaml:"list_url"`
	ListFile string `yaml:"list_file"`
}

type WebhookConfig struct {
	Secret      string `yaml:"secret"`
	PullCommand string `yaml:"pull_command"`
}

type Config struct {
	Addr       string           `yaml:"addr"`
	BaseURL    string           `yaml:"base_url"`
	DataDir    string           `yaml:"data_dir"`
	Article    ArticleConfig    `yaml:"article"`
	Modules    ModulesConfig    `yaml:"modules"`
	Diagrams   DiagramsConfig   `yaml:"diagrams"`
	Math       MathConfig       `yaml:"math"`
	Markdown   MarkdownConfig   `yaml:"markdown"`
	RSS        RSSConfig        `yaml:"rss"`
	HitCounter HitCounterConfig `yaml:"hit_counter"`
	Robots     RobotsConfig     `yaml:"robots"`
	Webhook    WebhookConfig    `yaml:"webhook"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Addr:    ":3000",
		BaseURL: "http://localhost:3000",
		DataDir: "data",
		Article: ArticleConfig{
			Index:            "index.md",
			Draft:            "draft.md",
			DefaultTitle:     "Untitled",
			DefaultThumbnail: "/default_thumbnail.png",
			ThumbnailTag:     "thumbnail",
		},
		Modules: ModulesConfig{
			Diagrams:  true,
			Math:      true,
			Highlight: true,
		},
		Diagrams: DiagramsConfig{OutputFormat: "svg"},
		Math:     MathConfig{OutputFormat: "mathml"},
		Markdown: MarkdownConfig{Autolink: true},
		RSS: RSSConfig{
			Title:       "gitblog",
			Description: "git-backed markdown blog",
			Length:      20,
		},
		HitCounter: HitCounterConfig{
			DBPath:               "hits.db",
			UniqueVisitorTimeout: 1800,
		},
		Robots: RobotsConfig{
			ListURL:  "https://raw.githubusercontent.com/atmire/COUNTER-Robots/master/generated/COUNTER_Robots_list.json",
			ListFile: "robots.json",
		},
	}
}

// Load reads path from fs and merges it over the defaults.
func Load(fs afero.Fs, path string) *Config {
	cfg := Default()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		log.Printf("⚠️ %s not found, using default configuration", path)
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Printf("⚠️ failed to parse %s, using default configuration: %v", path, err)
		return Default()
	}

	cfg.validate()
	return cfg
}

// VisitorTimeout returns the unique-visitor window as a duration.
func (c *Config) VisitorTimeout() time.Duration {
	return time.Duration(c.HitCounter.UniqueVisitorTimeout) * time.Second
}

// validate clamps values that would otherwise misbehave at runtime.
func (c *Config) validate() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:3000"
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.Article.Index == "" {
		c.Article.Index = "index.md"
	}
	if c.Article.Draft == "" {
		c.Article.Draft = "draft.md"
	}
	if c.Article.ThumbnailTag == "" {
		c.Article.ThumbnailTag = "thumbnail"
	}
	if c.Diagrams.OutputFormat != "svg" && c.Diagrams.OutputFormat != "img" {
		c.Diagrams.OutputFormat = "svg"
	}
	if c.RSS.Length < 1 {
		c.RSS.Length = 1
	}
	if c.RSS.Length > 100 {
		c.RSS.Length = 100
	}
	if c.HitCounter.UniqueVisitorTimeout < 1 {
		c.HitCounter.UniqueVisitorTimeout = 1800
	}
}

// String is used by the startup banner; it deliberately omits the webhook
// secret.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s data=%s diagrams=%t math=%t highlight=%t hits=%t",
		c.Addr, c.DataDir, c.Modules.Diagrams, c.Modules.Math, c.Modules.Highlight, c.Modules.HitCounter)
}
