package content

import (
	"encoding/json"
	"fmt"
)

// SectionError reports one section that could not be decoded.
type SectionError struct {
	Section string
	Err     error
}

func (e SectionError) Error() string { return fmt.Sprintf("section %s: %v", e.Section, e.Err) }

func (e SectionError) Unwrap() error { return e.Err }

// DecodePage decodes an all-sections result one section at a time. A section
// whose payload does not fit its bundle type is left nil and reported in the
// returned slice, in page order; the other sections are unaffected. The error
// is non-nil only when raw is not a JSON object (or null).
func DecodePage(raw []byte) (PageData, []SectionError, error) {
	var page PageData
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return page, nil, fmt.Errorf("decode page: %w", err)
	}
	var bad []SectionError
	note := func(key string, err error) {
		if err != nil {
			bad = append(bad, SectionError{Section: key, Err: err})
		}
	}
	note("siteSettings", section(env, "siteSettings", &page.SiteSettings))
	note("navigation", section(env, "navigation", &page.Navigation))
	note("hero", section(env, "hero", &page.Hero))
	note("proof", section(env, "proof", &page.Proof))
	note("problems", section(env, "problems", &page.Problems))
	note("solution", section(env, "solution", &page.Solution))
	note("process", section(env, "process", &page.Process))
	note("about", section(env, "about", &page.About))
	note("speaking", section(env, "speaking", &page.Speaking))
	note("book", section(env, "book", &page.Book))
	note("podcast", section(env, "podcast", &page.Podcast))
	note("contact", section(env, "contact", &page.Contact))
	note("footer", section(env, "footer", &page.Footer))
	return page, bad, nil
}

// section decodes env[key] into a fresh value so a failed decode never leaves
// a half-filled bundle behind.
func section[T any](env map[string]json.RawMessage, key string, dst **T) error {
	b, ok := env[key]
	if !ok {
		return nil
	}
	var v *T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}
