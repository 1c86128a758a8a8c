package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://example.com"))
	assert.True(t, IsHTTPURL("http://example.com/path?q=1"))
	assert.False(t, IsHTTPURL(""))
	assert.False(t, IsHTTPURL("ftp://example.com"))
	assert.False(t, IsHTTPURL("example.com"))
	assert.False(t, IsHTTPURL("https://"))
}

func TestValidateProjectLinks(t *testing.T) {
	v := ValidateProjectLinks(FormData{
		Link: "not a url",
		SideLinks: []SideLink{
			{Type: "x", URL: "https://x.com/ok"},
			{Type: "discord", URL: "discord.gg/bad"},
			{Type: "telegram", URL: ""},
		},
	})

	assert.False(t, v.Valid())
	assert.True(t, v.InvalidMain)
	assert.Equal(t, []int{1}, v.InvalidSideIndexes)
	require.Len(t, v.Errors, 2)
}

func TestValidateProjectLinksEmptyIsValid(t *testing.T) {
	assert.True(t, ValidateProjectLinks(FormData{Name: "A"}).Valid())
}

func TestHasProjectDuplicate(t *testing.T) {
	projects := []Project{
		{ID: 1, Name: "Scroll", Code: "SCR", Link: "https://scroll.io/home"},
	}

	// Name matches case-insensitively.
	assert.True(t, HasProjectDuplicate(projects, FormData{Name: "scroll"}))
	// Code matches case-insensitively.
	assert.True(t, HasProjectDuplicate(projects, FormData{Name: "Other", Code: "scr"}))
	// Link matches modulo case, trailing slash and query noise.
	assert.True(t, HasProjectDuplicate(projects, FormData{Name: "Other", Link: "https://SCROLL.io/home/?ref=x"}))

	assert.False(t, HasProjectDuplicate(projects, FormData{Name: "Linea"}))
	// A record never collides with itself.
	assert.False(t, HasProjectDuplicate(projects, FormData{ID: 1, Name: "Scroll"}))
}
