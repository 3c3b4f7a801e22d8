package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func findIssue(issues []Issue, path string) (Issue, bool) {
	for _, i := range issues {
		if i.Path == path {
			return i, true
		}
	}
	return Issue{}, false
}

func TestValidate_RequiredSiteTitle(t *testing.T) {
	issues := Default().Validate("siteSettings", map[string]any{"_id": "siteSettings", "_type": "siteSettings"})
	i, ok := findIssue(issues, "siteTitle")
	require.True(t, ok)
	require.Equal(t, LevelError, i.Level)
	require.True(t, HasErrors(issues))

	issues = Default().Validate("siteSettings", map[string]any{"siteTitle": "Hutchins Data Strategy"})
	require.False(t, HasErrors(issues))
}

func TestValidate_DescriptionLengthWarning(t *testing.T) {
	doc := map[string]any{
		"siteTitle":       "x",
		"siteDescription": strings.Repeat("a", 161),
	}
	issues := Default().Validate("siteSettings", doc)
	i, ok := findIssue(issues, "siteDescription")
	require.True(t, ok)
	require.Equal(t, LevelWarning, i.Level)
	require.False(t, HasErrors(issues))
}

func TestValidate_ArrayCapAndKeys(t *testing.T) {
	stats := []any{}
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		stats = append(stats, map[string]any{"_key": k, "value": "1", "label": "x"})
	}
	stats = append(stats, map[string]any{"value": "no key"})
	stats = append(stats, map[string]any{"_key": "a", "value": "dup"})

	issues := Default().Validate("heroSection", map[string]any{"stats": stats})
	i, ok := findIssue(issues, "stats")
	require.True(t, ok)
	require.Contains(t, i.Message, "at most 6")

	i, ok = findIssue(issues, "stats[5]")
	require.True(t, ok)
	require.Equal(t, "missing _key", i.Message)

	i, ok = findIssue(issues, "stats[6]")
	require.True(t, ok)
	require.Contains(t, i.Message, "duplicate _key")
}

func TestValidate_OptionsAndTypes(t *testing.T) {
	doc := map[string]any{
		"siteTitle":   "x",
		"calendlyUrl": "not a url",
		"socialLinks": []any{
			map[string]any{"_key": "k1", "platform": "MySpace", "url": "https://myspace.com"},
		},
		"email":  42,
		"legacy": "field",
	}
	issues := Default().Validate("siteSettings", doc)

	i, ok := findIssue(issues, "socialLinks[0].platform")
	require.True(t, ok)
	require.Contains(t, i.Message, "MySpace")

	_, ok = findIssue(issues, "calendlyUrl")
	require.True(t, ok)

	i, ok = findIssue(issues, "email")
	require.True(t, ok)
	require.Contains(t, i.Message, "expected string")

	i, ok = findIssue(issues, "legacy")
	require.True(t, ok)
	require.Equal(t, LevelWarning, i.Level)
}

func TestValidate_NestedFooterLinks(t *testing.T) {
	doc := map[string]any{
		"navSections": []any{
			map[string]any{
				"_key":    "s1",
				"heading": "Explore",
				"links": []any{
					map[string]any{"_key": "l1", "label": "About", "href": "#about", "external": "no"},
				},
			},
		},
	}
	issues := Default().Validate("footerSection", doc)
	i, ok := findIssue(issues, "navSections[0].links[0].external")
	require.True(t, ok)
	require.Contains(t, i.Message, "expected boolean")
}

func TestValidate_UnknownType(t *testing.T) {
	issues := Default().Validate("blogPost", map[string]any{})
	require.Len(t, issues, 1)
	require.Equal(t, LevelError, issues[0].Level)
}

func TestValidate_UnknownFieldsInStableOrder(t *testing.T) {
	doc := map[string]any{"proofItems": 1, "items": []any{"HIMSS"}, "zeta": 1, "alpha": 1, "_rev": "x", "mid": 1}
	want := []string{"alpha", "mid", "proofItems", "zeta"}
	for range 20 {
		var got []string
		for _, i := range Default().Validate("proofSection", doc) {
			if i.Message == "unknown field" {
				got = append(got, i.Path)
			}
		}
		require.Equal(t, want, got)
	}
}
