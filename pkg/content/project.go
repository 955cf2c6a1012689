// Package content defines the portfolio's content model and the rules that
// compose it into pages: project ordering, previous/next neighbours, the
// project counter, body grouping, and the responsive home grid.
//
// Content sources live in package cms. This package performs no I/O.
package content

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Project is a single portfolio entry.
type Project struct {
	Title       string    `json:"title" yaml:"title" toml:"title"`
	Slug        string    `json:"slug" yaml:"slug" toml:"slug"`
	Client      string    `json:"client,omitempty" yaml:"client" toml:"client"`
	Date        Date      `json:"date,omitempty" yaml:"date" toml:"date"`
	Order       *float64  `json:"order,omitempty" yaml:"order" toml:"order"`
	AspectRatio float64   `json:"aspectRatio,omitempty" yaml:"aspect_ratio" toml:"aspect_ratio"`
	Image       Image     `json:"image" yaml:"image" toml:"image"`
	VideoURL    string    `json:"videoUrl,omitempty" yaml:"video_url" toml:"video_url"`
	Intro       string    `json:"intro,omitempty" yaml:"intro" toml:"intro"`
	Body        []Block   `json:"body,omitempty" yaml:"body" toml:"body"`
	Role        string    `json:"role,omitempty" yaml:"role" toml:"role"`
	Credits     []Credit  `json:"credits,omitempty" yaml:"credits" toml:"credits"`
	Links       Links     `json:"links" yaml:"links" toml:"links"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at" toml:"created_at"`
}

// Ratio returns the width-to-height ratio used to lay the project out.
// An explicit AspectRatio wins, then the image's intrinsic dimensions,
// then fallback.
func (p Project) Ratio(fallback float64) float64 {
	if validRatio(p.AspectRatio) {
		return p.AspectRatio
	}
	if r := p.Image.Ratio(); validRatio(r) {
		return r
	}
	return fallback
}

// OrderValue returns the project's manual order, or 0 when unset.
func (p Project) OrderValue() float64 {
	if p.Order == nil {
		return 0
	}
	return *p.Order
}

// Meta returns the "client ~ date" line shown under the title. Either part
// may be missing.
func (p Project) Meta() string {
	var parts []string
	if p.Client != "" {
		parts = append(parts, p.Client)
	}
	if !p.Date.IsZero() {
		parts = append(parts, p.Date.Format("1/2/2006"))
	}
	return strings.Join(parts, " ~ ")
}

func validRatio(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

// Image is a reference to an image asset.
type Image struct {
	// Ref is the source's asset reference, if any.
	Ref    string `json:"ref,omitempty" yaml:"ref" toml:"ref"`
	URL    string `json:"url" yaml:"url" toml:"url"`
	Alt    string `json:"alt,omitempty" yaml:"alt" toml:"alt"`
	Width  int    `json:"width,omitempty" yaml:"width" toml:"width"`
	Height int    `json:"height,omitempty" yaml:"height" toml:"height"`
}

// Ratio returns Width/Height, or 0 when either is unknown.
func (i Image) Ratio() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return 0
	}
	return float64(i.Width) / float64(i.Height)
}

// Credit names a collaborator on a project.
type Credit struct {
	Role string `json:"role" yaml:"role" toml:"role"`
	Name string `json:"name" yaml:"name" toml:"name"`
	Link string `json:"link,omitempty" yaml:"link" toml:"link"`
}

// Links holds a project's external pages.
type Links struct {
	Site       string `json:"site,omitempty" yaml:"site" toml:"site"`
	Instagram  string `json:"instagram,omitempty" yaml:"instagram" toml:"instagram"`
	Behance    string `json:"behance,omitempty" yaml:"behance" toml:"behance"`
	ArtStation string `json:"artstation,omitempty" yaml:"artstation" toml:"artstation"`
	Awards     string `json:"awards,omitempty" yaml:"awards" toml:"awards"`
}

// LabeledLink is one entry of [Links.List].
type LabeledLink struct {
	Label string
	URL   string
}

// List returns the non-empty links in display order.
func (l Links) List() []LabeledLink {
	all := []LabeledLink{
		{"Website", l.Site},
		{"Instagram", l.Instagram},
		{"Behance", l.Behance},
		{"ArtStation", l.ArtStation},
		{"Awards", l.Awards},
	}
	out := all[:0]
	for _, link := range all {
		if link.URL != "" {
			out = append(out, link)
		}
	}
	return out
}

// epoch stands in for a missing project date when ordering.
var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Date is a calendar date or timestamp. It accepts both "2006-01-02" and
// RFC 3339 text, so it decodes the same from JSON, YAML and TOML strings.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s as a date or RFC 3339 timestamp. Blank input yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// OrEpoch returns the date, or 1970-01-01 when it is unset.
func (d Date) OrEpoch() time.Time {
	if d.IsZero() {
		return epoch
	}
	return d.Time
}

// MarshalText encodes the date as 2006-01-02 when it has no time part.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	if d.Time.Equal(d.Time.Truncate(24*time.Hour)) && d.Location() == time.UTC {
		return []byte(d.Format("2006-01-02")), nil
	}
	return []byte(d.Format(time.RFC3339Nano)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON overrides the embedded time.Time encoding.
func (d Date) MarshalJSON() ([]byte, error) {
	b, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(b))
}

// UnmarshalJSON accepts a date string or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	return d.UnmarshalText([]byte(*s))
}
