// Package sitemap renders sitemap protocol documents and robots.txt policies.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Namespace is the sitemap protocol namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is the closed set of change frequencies the storefront emits.
type ChangeFreq string

const (
	Hourly  ChangeFreq = "hourly"
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
)

// Valid reports whether f is one of the known frequencies.
func (f ChangeFreq) Valid() bool {
	switch f {
	case Hourly, Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Priority is a crawl priority between 0.0 and 1.0.
type Priority float64

// String formats the priority with at least one decimal, e.g. "1.0" or "0.85".
func (p Priority) String() string {
	v := float64(p)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// URLEntry is one <url> of a urlset document.
type URLEntry struct {
	Loc        string
	LastMod    string
	ChangeFreq ChangeFreq
	Priority   Priority
}

// IndexEntry is one <sitemap> of a sitemapindex document.
type IndexEntry struct {
	Loc     string
	LastMod string
}

// Timestamp formats t as an RFC 3339 UTC timestamp. A zero t means now.
func Timestamp(t, now time.Time) string {
	if t.IsZero() {
		t = now
	}
	return t.UTC().Format(time.RFC3339)
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlSitemap struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type xmlIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []xmlSitemap `xml:"sitemap"`
}

// FormatURLSet renders entries as a <urlset> document.
func FormatURLSet(entries []URLEntry) ([]byte, error) {
	set := xmlURLSet{Xmlns: Namespace, URLs: make([]xmlURL, 0, len(entries))}
	for _, e := range entries {
		if !e.ChangeFreq.Valid() {
			return nil, fmt.Errorf("sitemap entry %s: unknown change frequency %q", e.Loc, e.ChangeFreq)
		}
		set.URLs = append(set.URLs, xmlURL{
			Loc:        e.Loc,
			LastMod:    e.LastMod,
			ChangeFreq: string(e.ChangeFreq),
			Priority:   e.Priority.String(),
		})
	}
	return encode(set)
}

// FormatIndex renders entries as a <sitemapindex> document.
func FormatIndex(entries []IndexEntry) ([]byte, error) {
	index := xmlIndex{Xmlns: Namespace, Sitemaps: make([]xmlSitemap, 0, len(entries))}
	for _, e := range entries {
		index.Sitemaps = append(index.Sitemaps, xmlSitemap{Loc: e.Loc, LastMod: e.LastMod})
	}
	return encode(index)
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ProductChangeFreq derives a product's change frequency from its stock level.
func ProductChangeFreq(stock int) ChangeFreq {
	switch {
	case stock == 0:
		return Monthly
	case stock < 10:
		return Daily
	default:
		return Weekly
	}
}

// ProductPriority derives a product's crawl priority.
func ProductPriority(stock int, featured bool) Priority {
	switch {
	case featured:
		return 0.9
	case stock > 100:
		return 0.85
	case stock == 0:
		return 0.6
	default:
		return 0.8
	}
}
