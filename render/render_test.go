// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ideaboard/models"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newRenderer(user models.ID) *Renderer {
	r := New(user)
	r.Now = func() time.Time { return fixedNow }
	return r
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := Truncate(long, 180)
	assert.Equal(t, strings.Repeat("a", 179)+Ellipsis, got)
	assert.Equal(t, 180, utf8.RuneCountInString(got))

	short := strings.Repeat("b", 100)
	assert.Equal(t, short, Truncate(short, 180))

	exact := strings.Repeat("c", 180)
	assert.Equal(t, exact, Truncate(exact, 180))

	assert.Equal(t, "", Truncate("", 180))
	assert.Equal(t, "héllo…", Truncate("héllo wörld", 6))
}

func TestCard(t *testing.T) {
	r := newRenderer("u1")
	card := r.Card(models.Idea{
		ID:          "7",
		UserID:      "u1",
		Title:       "Offline mode",
		Description: strings.Repeat("x", 200),
		Category:    "mobile",
		CreatedAt:   models.Timestamp{Time: fixedNow.Add(-3 * 24 * time.Hour)},
		Upvotes:     []models.ID{"u1", "u2"},
		Downvotes:   []models.ID{"u3"},
	})

	assert.Equal(t, DefaultImage, card.ImageURL)
	assert.Equal(t, 180, utf8.RuneCountInString(card.Description))
	assert.Equal(t, 2, card.Upvotes)
	assert.Equal(t, 1, card.Downvotes)
	assert.True(t, card.UpActive)
	assert.False(t, card.DownActive)
	assert.True(t, card.Mine)
	assert.Equal(t, "3 days ago", card.Age)
}

func TestCard_AnonymousHasNoActiveMarkers(t *testing.T) {
	r := newRenderer("")
	card := r.Card(models.Idea{ID: "1", ImageURL: "/images/a.png", Upvotes: []models.ID{"u1"}})
	assert.False(t, card.UpActive)
	assert.False(t, card.Mine)
	assert.Equal(t, "/images/a.png", card.ImageURL)
	assert.Empty(t, card.Age)
}

func TestDetail(t *testing.T) {
	r := newRenderer("u2")
	desc := strings.Repeat("y", 300)
	d := r.Detail(models.Idea{ID: "12", Description: desc, Downvotes: []models.ID{"u2"}})

	assert.Equal(t, desc, d.Description)
	assert.Equal(t, "https://picsum.photos/seed/12/800/450", d.ImageURL)
	assert.True(t, d.DownActive)
	assert.Equal(t, "/ideas/12", d.SharePath)
}

func TestComputeStats(t *testing.T) {
	ideas := []models.Idea{
		{ID: "1", Category: "tech", Upvotes: []models.ID{"a", "b"}},
		{ID: "2", Category: "ux", Downvotes: []models.ID{"a"}},
		{ID: "3", Category: "tech"},
	}
	assert.Equal(t, Stats{Ideas: 3, Votes: 3, Categories: 2}, ComputeStats(ideas))
	assert.Equal(t, Stats{}, ComputeStats(nil))
}

func TestWriteHTML(t *testing.T) {
	r := newRenderer("u1")
	ideas := []models.Idea{
		{ID: "1", UserID: "u1", Title: "<script>alert(1)</script>", Category: "tech", Upvotes: []models.ID{"u1"}},
	}
	detail := r.Detail(ideas[0])
	view := View{
		UserID: "u1",
		Filter: models.Filter{}.Normalize(),
		Grid:   r.Grid(ideas),
		Detail: &detail,
		Error:  "Login required",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, view))
	html := buf.String()

	assert.Contains(t, html, `id="card-1"`)
	assert.Contains(t, html, `id="detail-1"`)
	assert.Contains(t, html, "Login required")
	assert.Contains(t, html, "up active")
	assert.Contains(t, html, `action="/ideas/1/edit"`)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

var voters = []models.ID{"a", "b", "c", "d", "e"}

func genIdeas() gopter.Gen {
	idea := gopter.CombineGens(
		gen.OneConstOf("tech", "ux", "mobile", "ops"),
		gen.IntRange(0, 3),
		gen.IntRange(0, 2),
		gen.AlphaString(),
	).Map(func(v []interface{}) models.Idea {
		up := v[1].(int)
		down := v[2].(int)
		return models.Idea{
			Category:    v[0].(string),
			Upvotes:     voters[:up],
			Downvotes:   voters[up : up+down],
			Description: v[3].(string),
		}
	})
	return gen.SliceOf(idea)
}

func TestStatsProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("votes equal the sum of vote set sizes", prop.ForAll(
		func(ideas []models.Idea) bool {
			sum := 0
			for _, idea := range ideas {
				sum += len(idea.Upvotes) + len(idea.Downvotes)
			}
			s := ComputeStats(ideas)
			return s.Votes == sum && s.Ideas == len(ideas)
		},
		genIdeas(),
	))

	properties.Property("categories count distinct category values", prop.ForAll(
		func(ideas []models.Idea) bool {
			distinct := map[string]bool{}
			for _, idea := range ideas {
				distinct[idea.Category] = true
			}
			return ComputeStats(ideas).Categories == len(distinct)
		},
		genIdeas(),
	))

	properties.Property("rendering twice is identical", prop.ForAll(
		func(ideas []models.Idea) bool {
			r := newRenderer("a")
			first := r.Grid(ideas)
			second := r.Grid(ideas)
			return assert.ObjectsAreEqual(first, second)
		},
		genIdeas(),
	))

	properties.Property("truncated text never exceeds the limit", prop.ForAll(
		func(s string, n int) bool {
			out := Truncate(s, n)
			count := utf8.RuneCountInString(s)
			if count <= n {
				return out == s
			}
			return utf8.RuneCountInString(out) == n && strings.HasSuffix(out, Ellipsis)
		},
		gen.AnyString(),
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}
