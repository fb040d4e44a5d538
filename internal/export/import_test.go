package export

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-backend/internal/model"
)

func TestFromJSON_RoundTrip(t *testing.T) {
	original := model.Note{
		Title:     "Trip",
		Content:   "<p>pack bags</p>",
		Tags:      []string{"travel", "todo"},
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	exported, err := CollectionJSON([]model.Note{original}, time.Now())
	require.NoError(t, err)

	drafts, err := FromJSON(exported)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.Equal(t, original.Title, drafts[0].Title)
	assert.Equal(t, original.Content, drafts[0].Content)
	assert.Equal(t, original.Tags, drafts[0].Tags)
}

func TestFromJSON_BareArray(t *testing.T) {
	drafts, err := FromJSON([]byte(`[{"title":"A"},{"title":"B","content":"text"}]`))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, "A", drafts[0].Title)
	assert.Equal(t, "B", drafts[1].Title)
	assert.Equal(t, "text", drafts[1].Content)
}

func TestFromJSON_SingleObject(t *testing.T) {
	drafts, err := FromJSON([]byte(`{"title":"Solo","tags":["one"]}`))
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.Equal(t, "Solo", drafts[0].Title)
	assert.Equal(t, []string{"one"}, drafts[0].Tags)
}

func TestFromJSON_Defaults(t *testing.T) {
	drafts, err := FromJSON([]byte(`{"content":"no title here"}`))
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.Equal(t, "Untitled", drafts[0].Title)
	assert.NotNil(t, drafts[0].Tags)
	assert.Empty(t, drafts[0].Tags)
}

func TestFromJSON_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":         `{broken`,
		"scalar root":      `42`,
		"non-object entry": `[{"title":"ok"}, "nope"]`,
		"notes not array":  `{"notes": "nope"}`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromJSON([]byte(input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
		})
	}
}

func TestFromMarkdown_RoundTrip(t *testing.T) {
	first := model.Note{
		Title:   "First",
		Content: "line one",
		Tags:    []string{"a", "b"},
	}
	second := model.Note{
		Title:   "Second",
		Content: "line two",
	}

	doc := CollectionMarkdown([]model.Note{first, second}, time.Now())

	drafts, err := FromMarkdown(doc)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, "First", drafts[0].Title)
	assert.Equal(t, "line one", drafts[0].Content)
	assert.Equal(t, []string{"a", "b"}, drafts[0].Tags)

	assert.Equal(t, "Second", drafts[1].Title)
	assert.Equal(t, "line two", drafts[1].Content)
}

func TestFromMarkdown_SingleSection(t *testing.T) {
	drafts, err := FromMarkdown("# Only\n\nbody text\nmore text\n")
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.Equal(t, "Only", drafts[0].Title)
	assert.Equal(t, "body text\nmore text", drafts[0].Content)
}

func TestFromMarkdown_NoHeading(t *testing.T) {
	drafts, err := FromMarkdown("just some text\n")
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.Equal(t, "Untitled", drafts[0].Title)
	assert.Equal(t, "just some text", drafts[0].Content)
}

func TestFromMarkdown_Empty(t *testing.T) {
	_, err := FromMarkdown("   \n  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestNoteMarkdown_Layout(t *testing.T) {
	note := model.Note{
		Title:     "Groceries",
		Content:   "milk",
		Tags:      []string{"home"},
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC),
	}

	got := NoteMarkdown(note)

	assert.Contains(t, got, "# Groceries\n")
	assert.Contains(t, got, "milk\n")
	assert.Contains(t, got, "**Tags:** #home\n")
	assert.Contains(t, got, "Created: 2024-05-01 09:30\n")
	assert.Contains(t, got, "Updated: 2024-05-02 11:00\n")
}

func TestNoteMarkdown_NoTagsLine(t *testing.T) {
	got := NoteMarkdown(model.Note{Title: "Plain"})

	assert.NotContains(t, got, "**Tags:**")
}
