package mediaurl

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hutchinsdata/site/internal/content"
)

var (
	// ErrNotConfigured is returned when no media backend is available.
	ErrNotConfigured = errors.New("mediaurl: media backend not configured")
	// ErrInvalidReference is returned for asset ids that cannot be parsed.
	ErrInvalidReference = errors.New("mediaurl: invalid image reference")
	ErrInvalidOptions   = errors.New("mediaurl: invalid transform options")
)

// Ref is a parsed image asset id of the form image-<hash>-<w>x<h>-<ext>.
type Ref struct {
	Hash   string
	Width  int
	Height int
	Ext    string
}

// ParseRef parses an asset document id.
func ParseRef(id string) (Ref, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 4 || parts[0] != "image" || parts[1] == "" || parts[3] == "" {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidReference, id)
	}
	w, h, ok := strings.Cut(parts[2], "x")
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidReference, id)
	}
	width, err1 := strconv.Atoi(w)
	height, err2 := strconv.Atoi(h)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidReference, id)
	}
	return Ref{Hash: parts[1], Width: width, Height: height, Ext: parts[3]}, nil
}

// Filename is the object name the asset is stored under.
func (r Ref) Filename() string {
	return fmt.Sprintf("%s-%dx%d.%s", r.Hash, r.Width, r.Height, r.Ext)
}

// Origin locates the untransformed asset for a reference.
type Origin interface {
	ObjectURL(r Ref) string
}

// SanityCDN serves assets from the hosted image pipeline.
type SanityCDN struct {
	ProjectID string
	Dataset   string
}

func (c SanityCDN) ObjectURL(r Ref) string {
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s", c.ProjectID, c.Dataset, r.Filename())
}

// Options are the transforms applied to an image. Zero values are omitted.
type Options struct {
	Width   int
	Height  int
	Quality int
	// Format is an output format hint such as webp or jpg.
	Format string
	// Auto is usually "format" to let the CDN negotiate.
	Auto string
	Fit  string
}

func (o Options) validate() error {
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("%w: negative dimension", ErrInvalidOptions)
	}
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("%w: quality %d outside 0-100", ErrInvalidOptions, o.Quality)
	}
	return nil
}

// Encode renders the options as a query string in a fixed parameter order.
func (o Options) Encode() string {
	var parts []string
	add := func(k, v string) { parts = append(parts, k+"="+url.QueryEscape(v)) }
	if o.Width > 0 {
		add("w", strconv.Itoa(o.Width))
	}
	if o.Height > 0 {
		add("h", strconv.Itoa(o.Height))
	}
	if o.Quality > 0 {
		add("q", strconv.Itoa(o.Quality))
	}
	if o.Format != "" {
		add("fm", o.Format)
	}
	if o.Auto != "" {
		add("auto", o.Auto)
	}
	if o.Fit != "" {
		add("fit", o.Fit)
	}
	return strings.Join(parts, "&")
}

// ParseParams decodes the transform options from a URL built by Builder.
func ParseParams(raw string) (Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Options{}, err
	}
	q := u.Query()
	var o Options
	for _, p := range []struct {
		key string
		dst *int
	}{{"w", &o.Width}, {"h", &o.Height}, {"q", &o.Quality}} {
		if v := q.Get(p.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Options{}, fmt.Errorf("%w: %s=%q", ErrInvalidOptions, p.key, v)
			}
			*p.dst = n
		}
	}
	o.Format = q.Get("fm")
	o.Auto = q.Get("auto")
	o.Fit = q.Get("fit")
	return o, nil
}

// Builder turns image references into deliverable URLs. A nil Builder, or one
// without an origin, fails every call with ErrNotConfigured.
type Builder struct {
	origin Origin
}

func New(origin Origin) *Builder { return &Builder{origin: origin} }

// NewSanity returns a builder on the hosted CDN, or nil when the project or
// dataset is unset.
func NewSanity(projectID, dataset string) *Builder {
	if projectID == "" || dataset == "" {
		return nil
	}
	return New(SanityCDN{ProjectID: projectID, Dataset: dataset})
}

// URL resolves img with the given transforms.
func (b *Builder) URL(img *content.Image, o Options) (string, error) {
	if b == nil || b.origin == nil {
		return "", ErrNotConfigured
	}
	if !img.HasAsset() {
		return "", fmt.Errorf("%w: image has no asset", ErrInvalidReference)
	}
	return b.URLForID(img.AssetID(), o)
}

// URLForID resolves a bare asset id.
func (b *Builder) URLForID(id string, o Options) (string, error) {
	if b == nil || b.origin == nil {
		return "", ErrNotConfigured
	}
	ref, err := ParseRef(id)
	if err != nil {
		return "", err
	}
	if err := o.validate(); err != nil {
		return "", err
	}
	u := b.origin.ObjectURL(ref)
	if qs := o.Encode(); qs != "" {
		u += "?" + qs
	}
	return u, nil
}

// Or resolves img, returning fallback when img has no asset or resolution
// fails. Rendering code uses it so a single bad image never breaks a page.
func (b *Builder) Or(img *content.Image, o Options, fallback string) string {
	if !img.HasAsset() {
		return fallback
	}
	u, err := b.URL(img, o)
	if err != nil {
		return fallback
	}
	return u
}
