package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/scaduxx/folio/pkg/cache"
	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/httputil"
	"github.com/scaduxx/folio/pkg/observability"
)

// minDate stands in for a missing project date in GROQ ordering.
const minDate = "1970-01-01T00:00:00Z"

// projection lists the project fields fetched by every query.
const projection = `{
  title,
  "slug": slug.current,
  client,
  date,
  order,
  aspectRatio,
  mainImage,
  videoUrl,
  intro,
  labContent,
  role,
  credits,
  links,
  _createdAt
}`

// GROQ queries.
const (
	QueryProjects = `*[_type == "project" && defined(slug.current)]
  | order(coalesce(order, 0) asc, coalesce(date, $minDate) desc)` + projection

	QueryProject = `*[_type == "project" && slug.current == $slug][0]` + projection
)

// SanityConfig configures a [SanityClient].
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool

	// BaseURL overrides https://<project>.api.sanity.io.
	BaseURL string

	// TTL bounds how long query results are cached.
	TTL time.Duration
}

// SanityClient reads projects from the Sanity query API.
type SanityClient struct {
	*httputil.Client
	cfg     SanityConfig
	keyer   cache.Keyer
	refresh bool
}

// NewSanityClient creates a client. A nil cache disables caching.
func NewSanityClient(cfg SanityConfig, c cache.Cache) (*SanityClient, error) {
	if cfg.ProjectID == "" || cfg.Dataset == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "sanity: project id and dataset are required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2026-01-08"
	}
	if cfg.TTL == 0 {
		cfg.TTL = cache.TTLQuery
	}

	var headers map[string]string
	if cfg.Token != "" {
		headers = map[string]string{"Authorization": "Bearer " + cfg.Token}
	}

	return &SanityClient{
		Client: httputil.NewClient(c, cfg.TTL, headers),
		cfg:    cfg,
		keyer:  cache.NewScopedKeyer(nil, "sanity:"+cfg.ProjectID+":"),
	}, nil
}

// WithRefresh makes every query bypass cached results.
func (s *SanityClient) WithRefresh(refresh bool) *SanityClient {
	s.refresh = refresh
	return s
}

func (s *SanityClient) Name() string { return "sanity" }

// Close is a no-op; the underlying cache is owned by the caller.
func (s *SanityClient) Close() error { return nil }

// Projects returns every project with a slug, in display order.
func (s *SanityClient) Projects(ctx context.Context) ([]content.Project, error) {
	var docs []sanityProject
	if err := s.Query(ctx, QueryProjects, map[string]any{"minDate": minDate}, &docs); err != nil {
		return nil, err
	}

	projects := make([]content.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, s.toProject(d))
	}
	// Ties in GROQ order are unspecified.
	content.Sort(projects)
	return projects, nil
}

// Project returns the project with the given slug.
func (s *SanityClient) Project(ctx context.Context, slug string) (content.Project, error) {
	if err := errors.ValidateSlug(slug); err != nil {
		return content.Project{}, err
	}

	var doc *sanityProject
	if err := s.Query(ctx, QueryProject, map[string]any{"slug": slug}, &doc); err != nil {
		return content.Project{}, err
	}
	if doc == nil {
		return content.Project{}, notFound(slug)
	}
	return s.toProject(*doc), nil
}

// Query runs a GROQ query and decodes its result into v. Results are read
// through the cache and transient failures are retried.
func (s *SanityClient) Query(ctx context.Context, query string, params map[string]any, v any) error {
	endpoint, err := s.QueryURL(query, params)
	if err != nil {
		return err
	}

	hooks := observability.CMS()
	name := queryName(query)
	hooks.OnQueryStart(ctx, s.Name(), name)
	start := time.Now()

	var resp struct {
		Result json.RawMessage `json:"result"`
	}
	key := s.keyer.QueryKey(s.cfg.Dataset, query, params)
	err = s.Cached(ctx, key, s.refresh, &resp, func() error {
		return s.Get(ctx, endpoint, &resp)
	})
	if err == nil {
		err = decodeResult(resp.Result, v)
	}
	hooks.OnQueryComplete(ctx, s.Name(), name, resultCount(resp.Result), time.Since(start), err)

	if err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "sanity query %s", name)
	}
	return nil
}

// QueryURL returns the GET URL for a query. Parameters are JSON-encoded
// and passed as $name.
func (s *SanityClient) QueryURL(query string, params map[string]any) (string, error) {
	values := url.Values{}
	values.Set("query", query)
	for k, v := range params {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode parameter %s: %w", k, err)
		}
		values.Set("$"+k, string(b))
	}

	version := s.cfg.APIVersion
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return s.baseURL() + "/" + version + "/data/query/" + url.PathEscape(s.cfg.Dataset) + "?" + values.Encode(), nil
}

// ImageURL returns the CDN URL for an asset reference in this project.
func (s *SanityClient) ImageURL(ref string, width int) string {
	return ImageURL(s.cfg.ProjectID, s.cfg.Dataset, ref, width)
}

func (s *SanityClient) baseURL() string {
	if s.cfg.BaseURL != "" {
		return strings.TrimRight(s.cfg.BaseURL, "/")
	}
	host := "api.sanity.io"
	if s.cfg.UseCDN {
		host = "apicdn.sanity.io"
	}
	return "https://" + s.cfg.ProjectID + "." + host
}

func decodeResult(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decode sanity result")
	}
	return nil
}

func resultCount(raw json.RawMessage) int {
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		return len(list)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	return 1
}

func queryName(query string) string {
	switch query {
	case QueryProjects:
		return "projects"
	case QueryProject:
		return "project"
	}
	return "query"
}

// =============================================================================
// Documents
// =============================================================================

type sanityProject struct {
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Client      string           `json:"client"`
	Date        string           `json:"date"`
	Order       *float64         `json:"order"`
	AspectRatio float64          `json:"aspectRatio"`
	MainImage   *sanityImage     `json:"mainImage"`
	VideoURL    string           `json:"videoUrl"`
	Intro       string           `json:"intro"`
	LabContent  []sanityBlock    `json:"labContent"`
	Role        string           `json:"role"`
	Credits     []content.Credit `json:"credits"`
	Links       *content.Links   `json:"links"`
	CreatedAt   time.Time        `json:"_createdAt"`
}

type sanityImage struct {
	Asset struct {
		Ref string `json:"_ref"`
	} `json:"asset"`
	Alt string `json:"alt"`
}

type sanityBlock struct {
	Type     string          `json:"_type"`
	Style    string          `json:"style"`
	Children []sanitySpan    `json:"children"`
	MarkDefs []sanityMarkDef `json:"markDefs"`

	// Image blocks.
	Asset *struct {
		Ref string `json:"_ref"`
	} `json:"asset"`
	Alt string `json:"alt"`

	// Markdown blocks.
	Markdown string `json:"markdown"`
}

type sanitySpan struct {
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

type sanityMarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href"`
}

func (s *SanityClient) toProject(d sanityProject) content.Project {
	date, _ := content.ParseDate(d.Date)
	p := content.Project{
		Title:       d.Title,
		Slug:        d.Slug,
		Client:      d.Client,
		Date:        date,
		Order:       d.Order,
		AspectRatio: d.AspectRatio,
		VideoURL:    d.VideoURL,
		Intro:       d.Intro,
		Body:        s.toBlocks(d.LabContent),
		Role:        d.Role,
		Credits:     d.Credits,
		CreatedAt:   d.CreatedAt,
	}
	if d.Links != nil {
		p.Links = *d.Links
	}
	if d.MainImage != nil {
		p.Image = s.toImage(d.MainImage.Asset.Ref, d.MainImage.Alt)
	}
	return p
}

func (s *SanityClient) toImage(ref, alt string) content.Image {
	img := content.Image{Ref: ref, URL: s.ImageURL(ref, 0), Alt: alt}
	fillImage(&img)
	return img
}

// toBlocks maps portable text onto content blocks. Unknown block types
// are dropped.
func (s *SanityClient) toBlocks(in []sanityBlock) []content.Block {
	var out []content.Block
	for _, b := range in {
		switch b.Type {
		case "block":
			block := content.Block{Type: content.BlockText, Style: b.Style}
			for _, c := range b.Children {
				block.Spans = append(block.Spans, content.Span{Text: c.Text, Marks: c.Marks})
			}
			for _, m := range b.MarkDefs {
				block.MarkDefs = append(block.MarkDefs, content.MarkDef{Key: m.Key, Type: m.Type, Href: m.Href})
			}
			out = append(out, block)
		case "image":
			if b.Asset == nil {
				continue
			}
			img := s.toImage(b.Asset.Ref, b.Alt)
			out = append(out, content.Block{Type: content.BlockImage, Image: &img})
		case "markdown":
			out = append(out, content.Block{Type: content.BlockMarkdown, Markdown: b.Markdown})
		}
	}
	return out
}
