package vocab

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, ds.Items)
	assert.Equal(t, FormatVersion, ds.FormatVersion)
	assert.Equal(t, len(ds.Items), ds.Counts.Total)

	words := Filter(ds.Items, CategoryWords)
	phrasal := Filter(ds.Items, CategoryPhrasalVerbs)
	assert.Equal(t, ds.Counts.Words, len(words))
	assert.Equal(t, ds.Counts.PhrasalVerbs, len(phrasal))

	seen := map[string]bool{}
	for _, item := range ds.Items {
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
		assert.NotEmpty(t, item.Term)
		assert.NotEmpty(t, item.Meaning)
	}
}

func TestDecode_FiltersUnknownCategories(t *testing.T) {
	in := `{"formatVersion":"v1.2.0","items":[
		{"id":"w-001","category":"Words","term":"a","meaning":"x","example":"e"},
		{"id":"x-001","category":"Idioms","term":"b","meaning":"y","example":"e"},
		{"id":"pv-001","category":"Phrasal Verbs","term":"c","meaning":"z","example":"e"}
	]}`
	ds, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"w-001", "pv-001"}, IDs(ds.Items))
}

func TestDecode_FormatVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"missing", "", false},
		{"same", "v1.0.0", false},
		{"minor bump", "v1.4.2", false},
		{"major bump", "v2.0.0", true},
		{"garbage", "latest", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := `{"formatVersion":"` + tt.version + `","items":[]}`
			_, err := Decode(strings.NewReader(in))
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat), "err = %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecode_DuplicateID(t *testing.T) {
	in := `{"items":[
		{"id":"w-001","category":"Words","term":"a","meaning":"x"},
		{"id":"w-001","category":"Words","term":"b","meaning":"y"}
	]}`
	_, err := Decode(strings.NewReader(in))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestBuildWriteLoad(t *testing.T) {
	words := ParseWords(wordsDoc)
	phrasal := ParsePhrasalVerbs(phrasalDoc)
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	ds := Build(words, phrasal, now)
	assert.Equal(t, Counts{Words: 3, PhrasalVerbs: 2, Total: 5}, ds.Counts)

	var buf bytes.Buffer
	require.NoError(t, ds.Write(&buf))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"phrasalVerbs": 2`)

	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Items, loaded.Items)
	assert.True(t, now.Equal(loaded.GeneratedAt))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, CategoryWords, CategoryAll.Next())
	assert.Equal(t, CategoryPhrasalVerbs, CategoryWords.Next())
	assert.Equal(t, CategoryAll, CategoryPhrasalVerbs.Next())

	c, ok := ParseCategory("phrasal")
	assert.True(t, ok)
	assert.Equal(t, CategoryPhrasalVerbs, c)

	c, ok = ParseCategory("Words")
	assert.True(t, ok)
	assert.Equal(t, CategoryWords, c)

	c, ok = ParseCategory("idioms")
	assert.False(t, ok)
	assert.Equal(t, CategoryAll, c)
}

func TestFilter_All(t *testing.T) {
	items := []LearningItem{{ID: "a", Category: CategoryWords}, {ID: "b", Category: CategoryPhrasalVerbs}}
	assert.Len(t, Filter(items, CategoryAll), 2)
	assert.Equal(t, []string{"b"}, IDs(Filter(items, CategoryPhrasalVerbs)))
}
