package formstate

import (
	"testing"

	"Backend-Procure/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedSections(names ...string) []models.Section {
	out := make([]models.Section, len(names))
	for i, n := range names {
		out[i] = models.Section{Name: n, Order: i}
	}
	return out
}

func sectionNames(sections []models.Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Name
	}
	return out
}

func TestSectionStoreInsert(t *testing.T) {
	t.Run("InsertInMiddle", func(t *testing.T) {
		store := NewSectionStore(namedSections("meta", "item A", "item C"))

		err := store.InsertSection(2, models.Section{Name: "item B"})
		require.NoError(t, err)
		assert.Equal(t, []string{"meta", "item A", "item B", "item C"}, sectionNames(store.Sections()))
	})

	t.Run("InsertAtEnd", func(t *testing.T) {
		store := NewSectionStore(namedSections("meta"))

		err := store.InsertSection(store.Len(), models.Section{Name: "tail"})
		require.NoError(t, err)
		assert.Equal(t, []string{"meta", "tail"}, sectionNames(store.Sections()))
	})

	t.Run("OutOfRange", func(t *testing.T) {
		store := NewSectionStore(namedSections("meta"))

		assert.ErrorIs(t, store.InsertSection(-1, models.Section{}), ErrIndexOutOfRange)
		assert.ErrorIs(t, store.InsertSection(2, models.Section{}), ErrIndexOutOfRange)
	})
}

func TestSectionStoreRemove(t *testing.T) {
	store := NewSectionStore(namedSections("meta", "item A", "item B"))

	require.NoError(t, store.RemoveSection(1))
	assert.Equal(t, []string{"meta", "item B"}, sectionNames(store.Sections()))

	// positions shift; order values are untouched
	got, err := store.Section(1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Order)

	assert.ErrorIs(t, store.RemoveSection(5), ErrIndexOutOfRange)
}

func TestSectionStoreUpdate(t *testing.T) {
	store := NewSectionStore(namedSections("meta", "item A"))

	require.NoError(t, store.UpdateSection(1, models.Section{Name: "item A2"}))
	got, err := store.Section(1)
	require.NoError(t, err)
	assert.Equal(t, "item A2", got.Name)

	assert.ErrorIs(t, store.UpdateSection(9, models.Section{}), ErrIndexOutOfRange)
	_, err = store.Section(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSectionStoreCopiesInput(t *testing.T) {
	input := namedSections("meta", "item A")
	store := NewSectionStore(input)

	input[0].Name = "mutated"
	got, err := store.Section(0)
	require.NoError(t, err)
	assert.Equal(t, "meta", got.Name)

	out := store.Sections()
	out[1].Name = "also mutated"
	got, err = store.Section(1)
	require.NoError(t, err)
	assert.Equal(t, "item A", got.Name)
}

func TestSectionStoreReplaceAll(t *testing.T) {
	store := NewSectionStore(namedSections("meta", "item A"))

	store.ReplaceAll(namedSections("fresh"))
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []string{"fresh"}, sectionNames(store.Sections()))
}
