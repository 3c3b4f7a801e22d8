package content

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePage_BrokenSectionLeavesOthersIntact(t *testing.T) {
	raw := `{"hero":{"headline":"Decisions you can defend."},"proof":{"items":[{"_key":"a","text":"x"}]},"footer":{"copyrightText":"(c) {year}"}}`
	page, bad, err := DecodePage([]byte(raw))
	require.NoError(t, err)

	require.NotNil(t, page.Hero)
	require.Equal(t, "Decisions you can defend.", page.Hero.Headline)
	require.NotNil(t, page.Footer)
	require.Nil(t, page.Proof)

	require.Len(t, bad, 1)
	require.Equal(t, "proof", bad[0].Section)
	require.Contains(t, bad[0].Error(), "section proof")
}

func TestDecodePage_EveryBundleIsDecodedSeparately(t *testing.T) {
	fields := jsonFields(reflect.TypeOf(PageData{}))
	raw := "{"
	i := 0
	for name := range fields {
		if i > 0 {
			raw += ","
		}
		raw += `"` + name + `":1`
		i++
	}
	raw += "}"

	_, bad, err := DecodePage([]byte(raw))
	require.NoError(t, err)
	require.Len(t, bad, len(fields))
}

func TestDecodePage_NullAndMissingSections(t *testing.T) {
	page, bad, err := DecodePage([]byte(`null`))
	require.NoError(t, err)
	require.Empty(t, bad)
	require.Equal(t, PageData{}, page)

	page, bad, err = DecodePage([]byte(`{"hero":null}`))
	require.NoError(t, err)
	require.Empty(t, bad)
	require.Nil(t, page.Hero)
}

func TestDecodePage_NotAnObject(t *testing.T) {
	_, _, err := DecodePage([]byte(`[1,2]`))
	require.Error(t, err)
}
