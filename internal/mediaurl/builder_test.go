package mediaurl

import (
	"strings"
	"testing"

	"github.com/hutchinsdata/site/internal/content"
	"github.com/stretchr/testify/require"
)

const assetID = "image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg"

func portrait() *content.Image {
	return &content.Image{Asset: &content.Asset{ID: assetID}, Alt: "Portrait"}
}

func TestParseRef(t *testing.T) {
	r, err := ParseRef(assetID)
	require.NoError(t, err)
	require.Equal(t, Ref{Hash: "Tb9Ew8CXIwaY6R1kjMvI0uRR", Width: 2000, Height: 3000, Ext: "jpg"}, r)
	require.Equal(t, "Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg", r.Filename())

	for _, bad := range []string{"", "file-abc-1x1-pdf", "image-abc-1x1", "image-abc-wide-jpg", "image-abc-0x10-png"} {
		_, err := ParseRef(bad)
		require.ErrorIs(t, err, ErrInvalidReference, bad)
	}
}

func TestURL_RoundTripsParams(t *testing.T) {
	b := NewSanity("wl8pm9jv", "production")
	u, err := b.URL(portrait(), Options{Width: 900, Quality: 90})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.sanity.io/images/wl8pm9jv/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?w=900&q=90", u)

	o, err := ParseParams(u)
	require.NoError(t, err)
	require.Equal(t, Options{Width: 900, Quality: 90}, o)
}

func TestURL_FixedParameterOrder(t *testing.T) {
	b := NewSanity("p", "d")
	opts := Options{Width: 1200, Height: 630, Quality: 80, Format: "webp", Auto: "format", Fit: "crop"}
	u, err := b.URL(portrait(), opts)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(u, "?w=1200&h=630&q=80&fm=webp&auto=format&fit=crop"), u)

	again, _ := b.URL(portrait(), opts)
	require.Equal(t, u, again)

	o, err := ParseParams(u)
	require.NoError(t, err)
	require.Equal(t, opts, o)
}

func TestURL_UsesBareReference(t *testing.T) {
	img := &content.Image{Asset: &content.Asset{Ref: assetID}}
	u, err := NewSanity("p", "d").URL(img, Options{})
	require.NoError(t, err)
	require.NotContains(t, u, "?")
}

func TestURL_NotConfigured(t *testing.T) {
	var b *Builder
	_, err := b.URL(portrait(), Options{Width: 10})
	require.ErrorIs(t, err, ErrNotConfigured)

	require.Nil(t, NewSanity("", "production"))
	_, err = NewSanity("", "production").URL(portrait(), Options{})
	require.ErrorIs(t, err, ErrNotConfigured)

	require.Equal(t, "/img/chris-about.jpg", b.Or(portrait(), Options{}, "/img/chris-about.jpg"))
}

func TestURL_Errors(t *testing.T) {
	b := NewSanity("p", "d")
	_, err := b.URL(&content.Image{}, Options{})
	require.ErrorIs(t, err, ErrInvalidReference)
	_, err = b.URL(nil, Options{})
	require.ErrorIs(t, err, ErrInvalidReference)
	_, err = b.URL(portrait(), Options{Quality: 101})
	require.ErrorIs(t, err, ErrInvalidOptions)

	require.Equal(t, "/fallback.png", b.Or(nil, Options{}, "/fallback.png"))
	require.Equal(t, "/fallback.png", b.Or(&content.Image{Asset: &content.Asset{ID: "junk"}}, Options{}, "/fallback.png"))
}

type bucketOrigin struct{ base string }

func (o bucketOrigin) ObjectURL(r Ref) string { return o.base + "/" + r.Filename() }

func TestURL_CustomOrigin(t *testing.T) {
	b := New(bucketOrigin{base: "http://localhost:9000/site-media"})
	u, err := b.URL(portrait(), Options{Width: 64, Height: 64})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/site-media/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?w=64&h=64", u)
}
