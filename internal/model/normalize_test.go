package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow = int64(1_700_000_000_000)

func TestNormalizeLegacyRecord(t *testing.T) {
	raw := []byte(`[{
		"id": "42",
		"name": "zkSync",
		"code": "zk",
		"task": "bridge",
		"taskCost": "12.5",
		"favorite": 1,
		"xLink": "https://x.com/zksync",
		"createdAt": 1600000000000
	}]`)

	list, err := DecodeProjects(raw)
	require.NoError(t, err)

	projects := NormalizeProjects(list, testNow)
	require.Len(t, projects, 1)
	p := projects[0]

	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, "zkSync", p.Name)
	assert.Equal(t, "Z", p.Initial)
	assert.Equal(t, []string{"bridge"}, p.TaskType)
	assert.Equal(t, 12.5, p.TaskCost)
	assert.True(t, p.Favorite)
	assert.Equal(t, DefaultStatus, p.Status)
	assert.Equal(t, float64(DefaultTaskTime), p.TaskTime)
	// createdAt stands in for a missing lastEdited
	assert.Equal(t, int64(1600000000000), p.LastEdited)
	require.Len(t, p.SideLinks, 1)
	assert.Equal(t, "x", p.SideLinks[0].Type)
	assert.Equal(t, "https://x.com/zksync", p.SideLinks[0].URL)
}

func TestNormalizeClampsOversizedFields(t *testing.T) {
	tags := make([]any, 25)
	for i := range tags {
		tags[i] = strings.Repeat("t", 40)
	}
	links := make([]any, 30)
	for i := range links {
		links[i] = map[string]any{"type": "x", "url": "https://example.com"}
	}
	sideLinks, err := json.Marshal(links)
	require.NoError(t, err)

	logos := make([]json.RawMessage, 15)
	for i := range logos {
		logos[i] = json.RawMessage(`"logo"`)
	}

	p := normalizeOne(RawProject{
		Name:      strings.Repeat("n", 200),
		Code:      strings.Repeat("c", 30),
		Note:      strings.Repeat("x", 500),
		TaskType:  tags,
		SideLinks: sideLinks,
		Logos:     logos,
	}, testNow)

	assert.Len(t, p.Name, MaxName)
	assert.Len(t, p.Code, MaxCode)
	assert.Len(t, p.Note, MaxNote)
	assert.Len(t, p.TaskType, MaxTags)
	assert.Len(t, p.TaskType[0], MaxTagLen)
	assert.Len(t, p.SideLinks, MaxSideLinks)
	assert.Len(t, p.Logos, MaxLogos)
}

func TestNormalizeUnusableFieldsDegrade(t *testing.T) {
	p := normalizeOne(RawProject{
		ID:       "not-a-number",
		Name:     map[string]any{"weird": true},
		TaskCost: "-3",
		TaskTime: "abc",
	}, testNow)

	assert.Equal(t, testNow, p.ID)
	assert.Equal(t, "", p.Name)
	assert.Equal(t, "?", p.Initial)
	assert.Equal(t, float64(0), p.TaskCost)
	assert.Equal(t, float64(DefaultTaskTime), p.TaskTime)
	assert.Equal(t, testNow, p.LastEdited)
	assert.NotNil(t, p.TaskType)
	assert.NotNil(t, p.Logos)
}

func TestNormalizeIdempotent(t *testing.T) {
	list, err := DecodeProjects([]byte(`[{"id": 1, "name": "Éclair", "status": "reward"}]`))
	require.NoError(t, err)

	once := NormalizeProjects(list, testNow)
	twice := Normalize(once, testNow)

	assert.Equal(t, once, twice)
}

func TestNormalizeSideLinkShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  RawProject
		want []SideLink
	}{
		{
			name: "array of objects",
			raw:  RawProject{SideLinks: json.RawMessage(`[{"type":"discord","url":"https://discord.gg/a"}]`)},
			want: []SideLink{{Type: "discord", URL: "https://discord.gg/a"}},
		},
		{
			name: "legacy extraLinks strings",
			raw:  RawProject{ExtraLinks: json.RawMessage(`["https://example.com"]`)},
			want: []SideLink{{URL: "https://example.com"}},
		},
		{
			name: "named object",
			raw:  RawProject{SideLinks: json.RawMessage(`{"x":"https://x.com/p","telegram":"https://t.me/p"}`)},
			want: []SideLink{{Type: "x", URL: "https://x.com/p"}, {Type: "telegram", URL: "https://t.me/p"}},
		},
		{
			name: "flat legacy fields",
			raw:  RawProject{DiscordLink: "https://discord.gg/b"},
			want: []SideLink{{Type: "discord", URL: "https://discord.gg/b"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := normalizeOne(tc.raw, testNow)
			assert.Equal(t, tc.want, p.SideLinks)
		})
	}
}

func TestNameInitialUnicode(t *testing.T) {
	assert.Equal(t, "É", normalizeOne(RawProject{Name: "éclair"}, testNow).Initial)
	assert.Equal(t, "?", normalizeOne(RawProject{}, testNow).Initial)
}
