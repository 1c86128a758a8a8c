package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportPayloadBareArray(t *testing.T) {
	res, err := ParseImportPayload([]byte(`[{"id": 1, "name": "A"}]`))
	require.NoError(t, err)

	assert.True(t, res.HasContent)
	assert.Len(t, res.Projects, 1)
	assert.False(t, res.HasOptions)
	assert.False(t, res.HasUpdatedAt)
}

func TestParseImportPayloadWrapped(t *testing.T) {
	res, err := ParseImportPayload([]byte(`{
		"projects": [{"id": 1, "name": "A"}],
		"customOptions": {"taskType": [{"value": "bridge", "text": "Bridge"}]},
		"lastUpdatedAt": 123
	}`))
	require.NoError(t, err)

	assert.True(t, res.HasContent)
	assert.Len(t, res.Projects, 1)
	assert.True(t, res.HasOptions)
	assert.True(t, res.HasUpdatedAt)
	assert.Equal(t, int64(123), res.LastUpdatedAt)
	assert.Equal(t, "Bridge", res.CustomOptions["taskType"][0].Text)
}

func TestParseImportPayloadOptionsOnly(t *testing.T) {
	res, err := ParseImportPayload([]byte(`{"customOptions": {"status": []}}`))
	require.NoError(t, err)

	assert.True(t, res.HasContent)
	assert.Empty(t, res.Projects)
}

func TestParseImportPayloadEmpty(t *testing.T) {
	res, err := ParseImportPayload([]byte(`[]`))
	require.NoError(t, err)
	assert.False(t, res.HasContent)

	res, err = ParseImportPayload([]byte(`{}`))
	require.NoError(t, err)
	assert.False(t, res.HasContent)

	_, err = ParseImportPayload([]byte(`not json`))
	assert.Error(t, err)
}

func TestEmptyPayload(t *testing.T) {
	p := EmptyPayload()
	assert.NotNil(t, p.Projects)
	assert.NotNil(t, p.CustomOptions)
	assert.Zero(t, p.LastUpdatedAt)
}
