// defines the data structures shared by the catalog, feed and server
package models

import (
	"encoding/xml"
	"time"
)

// Article is one entry in the catalog, keyed by its date-path.
// Content is never stored here; rendered HTML lives only in the
// per-request response path.
type Article struct {
	DatePath     string
	RealPath     string
	IsDraft      bool
	Year         int
	Month        int
	Day          int
	Date         time.Time
	Title        string
	Thumbnail    string
	EscapedTitle string
	URL          string
}

// HitCount is the per-path counter pair returned by the hits store.
type HitCount struct {
	Hits     int64 `msgpack:"h"`
	Visitors int64 `msgpack:"v"`
}

// --- RSS Structures ---

type Rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

type Channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	LastBuildDate string `xml:"lastBuildDate"`
	TTL           int    `xml:"ttl"`
	Items         []Item `xml:"item"`
}

type Item struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Guid    string `xml:"guid"`
}
