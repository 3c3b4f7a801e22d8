package sitemap

import (
	"bytes"
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuild_Entries(t *testing.T) {
	mod := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	set := Build("https://hutchinsdatastrategy.com/", mod)

	require.Len(t, set.URLs, 6)
	require.Equal(t, URL{Loc: "https://hutchinsdatastrategy.com", LastMod: "2026-05-04T03:02:01Z", ChangeFreq: Weekly, Priority: "1.0"}, set.URLs[0])
	require.Equal(t, "https://hutchinsdatastrategy.com/#about", set.URLs[1].Loc)
	require.Equal(t, Monthly, set.URLs[2].ChangeFreq)
	require.Equal(t, "0.7", set.URLs[3].Priority)
	require.Equal(t, Weekly, set.URLs[4].ChangeFreq)
	require.Equal(t, URL{Loc: "https://hutchinsdatastrategy.com/#contact", LastMod: "2026-05-04T03:02:01Z", ChangeFreq: Yearly, Priority: "0.6"}, set.URLs[5])
}

func TestWrite_RoundTrips(t *testing.T) {
	set := Build("https://example.com", time.Unix(0, 0))
	var buf bytes.Buffer
	require.NoError(t, set.Write(&buf))
	require.Contains(t, buf.String(), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	var got URLSet
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, set.URLs, got.URLs)
}
