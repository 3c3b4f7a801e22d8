package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageData_AssetIDs(t *testing.T) {
	raw := `{
		"siteSettings": {"logo": {"asset": {"_id": "image-logo-10x10-png"}}, "favicon": {}},
		"hero": {"heroImage": {"asset": {"_ref": "image-hero-1600x900-jpg"}, "alt": "Chris"}},
		"about": {"portrait": {"asset": {"_id": "image-logo-10x10-png"}}},
		"speaking": null
	}`
	var p PageData
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.Equal(t, []string{"image-logo-10x10-png", "image-hero-1600x900-jpg"}, p.AssetIDs())
	require.Len(t, p.Images(), 3)

	var empty *PageData
	require.Empty(t, empty.AssetIDs())
}

func TestContactFormFields_NilVersusEmpty(t *testing.T) {
	var unset, cleared ContactData
	require.NoError(t, json.Unmarshal([]byte(`{"heading":"Hi"}`), &unset))
	require.NoError(t, json.Unmarshal([]byte(`{"formFields":[]}`), &cleared))
	require.Nil(t, unset.FormFields)
	require.NotNil(t, cleared.FormFields)
	require.Empty(t, cleared.FormFields)
}

func TestKeyedItemsKeepOrder(t *testing.T) {
	raw := `{"steps":[{"_key":"z","number":"01"},{"_key":"a","number":"02"},{"_key":"m","number":"03"}]}`
	var p ProcessData
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	var keys []string
	for _, s := range p.Steps {
		keys = append(keys, s.Key)
	}
	require.Equal(t, []string{"z", "a", "m"}, keys)
}
