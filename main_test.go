package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greatxrider/interactive-form-project/form"
	"github.com/greatxrider/interactive-form-project/http/validation"
)

func TestReadSnapshot_YAML(t *testing.T) {
	snap, err := readSnapshot("testdata/snapshot.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", snap.Fields[validation.Name])
	assert.Equal(t, "02139", snap.Fields[validation.Zip])
	assert.Equal(t, form.CreditCard, snap.Payment)
	assert.Equal(t, []string{"all", "js-frameworks", "npm"}, snap.Activities)
}

func TestReadSnapshot_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"fields":{"name":"Ada","email":"ada@example.com"},"payment":"paypal"}`), 0o600))

	snap, err := readSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, form.PayPal, snap.Payment)
	assert.True(t, form.Submit(validation.NewRegistry(), snap).Allowed)
}

func TestReadSnapshot_Missing(t *testing.T) {
	_, err := readSnapshot("testdata/missing.yaml")
	assert.Error(t, err)
}
