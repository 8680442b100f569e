// Package robots loads a JSON list of crawler user-agent patterns and
// answers whether a request came from one of them. Fetch or parse failures
// degrade to "nobody is a robot" so hit counting keeps working.
package robots

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

type listEntry struct {
	Pattern string `json:"pattern"`
}

type Detector struct {
	listURL  string
	listFile string
	fsys     afero.Fs
	client   *http.Client

	mu      sync.RWMutex
	pattern *regexp.Regexp
	count   int
}

func New(fsys afero.Fs, listURL, listFile string) *Detector {
	return &Detector{
		listURL:  listURL,
		listFile: listFile,
		fsys:     fsys,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Load downloads the pattern list to the configured file, then compiles it.
// A download failure falls back to whatever copy is already on disk.
func (d *Detector) Load(ctx context.Context) error {
	fetchErr := d.fetch(ctx)
	if err := d.readFile(); err != nil {
		if fetchErr != nil {
			return fmt.Errorf("fetch robots list: %w", fetchErr)
		}
		return err
	}
	return nil
}

func (d *Detector) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.listURL, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return afero.WriteFile(d.fsys, d.listFile, data, 0644)
}

// readFile parses the on-disk list and compiles one alternation pattern.
func (d *Detector) readFile() error {
	data, err := afero.ReadFile(d.fsys, d.listFile)
	if err != nil {
		return fmt.Errorf("read robots list: %w", err)
	}

	var entries []listEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse robots list: %w", err)
	}

	var patterns []string
	for _, e := range entries {
		if e.Pattern != "" {
			patterns = append(patterns, e.Pattern)
		}
	}
	if len(patterns) == 0 {
		return fmt.Errorf("robots list is empty")
	}

	compiled, err := regexp.Compile("(" + strings.Join(patterns, "|") + ")")
	if err != nil {
		return fmt.Errorf("compile robots pattern: %w", err)
	}

	d.mu.Lock()
	d.pattern = compiled
	d.count = len(patterns)
	d.mu.Unlock()
	return nil
}

// Count reports how many patterns are loaded.
func (d *Detector) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.count
}

// IsRobot matches a User-Agent header against the loaded list. With no list
// loaded every agent is treated as human.
func (d *Detector) IsRobot(userAgent string) bool {
	d.mu.RLock()
	pattern := d.pattern
	d.mu.RUnlock()
	if pattern == nil {
		return false
	}
	return pattern.MatchString(userAgent)
}
