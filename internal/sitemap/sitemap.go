// Package sitemap builds the sitemap for the single-page site.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type ChangeFreq string

const (
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
)

type URL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod"`
	ChangeFreq ChangeFreq `xml:"changefreq"`
	Priority   string     `xml:"priority"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type entry struct {
	anchor   string
	freq     ChangeFreq
	priority float64
}

var entries = []entry{
	{"", Weekly, 1.0},
	{"#about", Monthly, 0.8},
	{"#speaking", Monthly, 0.8},
	{"#book", Monthly, 0.7},
	{"#podcast", Weekly, 0.7},
	{"#contact", Yearly, 0.6},
}

// Build lists the page and its anchors under baseURL. Every entry carries
// lastMod as its modification time.
func Build(baseURL string, lastMod time.Time) URLSet {
	base := strings.TrimRight(baseURL, "/")
	mod := lastMod.UTC().Format(time.RFC3339)
	set := URLSet{XMLNS: Namespace}
	for _, e := range entries {
		loc := base
		if e.anchor != "" {
			loc = base + "/" + e.anchor
		}
		set.URLs = append(set.URLs, URL{
			Loc:        loc,
			LastMod:    mod,
			ChangeFreq: e.freq,
			Priority:   fmt.Sprintf("%.1f", e.priority),
		})
	}
	return set
}

// Write encodes set as an indented XML document.
func (set URLSet) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return enc.Flush()
}
