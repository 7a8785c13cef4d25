package formstate

import (
	"testing"

	"Backend-Procure/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func lineItemTemplate(id primitive.ObjectID, options ...string) models.Section {
	opts := make([]models.Option, len(options))
	for i, v := range options {
		opts[i] = models.Option{Value: v, Order: i}
	}
	return models.Section{
		ID:             id,
		Name:           "Line Item",
		IsDuplicatable: true,
		Fields: []models.Field{
			{Name: "General Name", Type: models.FieldTypeDropdown, Options: opts},
			{Name: "Quantity", Type: models.FieldTypeNumber},
		},
	}
}

func answer(f *models.Field, raw string) {
	f.Responses = []models.Response{{ID: "r1", Value: raw}}
}

func TestDuplicateSection(t *testing.T) {
	templateID := primitive.NewObjectID()

	t.Run("CloneResetsResponsesAndTagsGroup", func(t *testing.T) {
		template := lineItemTemplate(templateID, "Cement", "Sand")
		answer(&template.Fields[0], `"Cement"`)
		sections := []models.Section{{Name: "meta"}, template}

		clone, index, err := DuplicateSection(sections, templateID, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, index)

		for _, f := range clone.Fields {
			assert.Empty(t, f.Responses)
			require.NotNil(t, f.DuplicatableSectionID)
		}
		// one group id shared across the clone's fields
		assert.Equal(t, clone.Fields[0].DuplicatableSectionID, clone.Fields[1].DuplicatableSectionID)
		// template is untouched
		assert.Nil(t, sections[1].Fields[0].DuplicatableSectionID)
		assert.Len(t, sections[1].Fields[0].Responses, 1)
	})

	t.Run("GroupIDsDifferAcrossClones", func(t *testing.T) {
		sections := []models.Section{{Name: "meta"}, lineItemTemplate(templateID, "Cement", "Sand")}

		first, _, err := DuplicateSection(sections, templateID, nil)
		require.NoError(t, err)
		second, _, err := DuplicateSection(sections, templateID, nil)
		require.NoError(t, err)

		assert.NotEqual(t, *first.Fields[0].DuplicatableSectionID, *second.Fields[0].DuplicatableSectionID)
	})

	t.Run("InsertsAfterLastClone", func(t *testing.T) {
		template := lineItemTemplate(templateID, "Cement", "Sand")
		sections := []models.Section{{Name: "meta"}, template, template, {Name: "trailer"}}

		_, index, err := DuplicateSection(sections, templateID, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, index)
	})

	t.Run("PoolSubsetReplacesOptions", func(t *testing.T) {
		sections := []models.Section{lineItemTemplate(templateID, "Cement", "Sand", "Gravel")}
		pools := map[string][]models.Option{
			"General Name": {{Value: "Sand"}, {Value: "Gravel"}},
		}

		clone, _, err := DuplicateSection(sections, templateID, pools)
		require.NoError(t, err)
		require.Len(t, clone.Fields[0].Options, 2)
		assert.Equal(t, "Sand", clone.Fields[0].Options[0].Value)
		// unpooled fields keep the template's options
		assert.Empty(t, clone.Fields[1].Options)
	})

	t.Run("EmptyPoolRefused", func(t *testing.T) {
		sections := []models.Section{lineItemTemplate(templateID, "Cement")}
		pools := map[string][]models.Option{"General Name": {}}

		_, _, err := DuplicateSection(sections, templateID, pools)
		assert.ErrorIs(t, err, ErrNoAvailableOptions)
	})

	t.Run("UnknownTemplate", func(t *testing.T) {
		sections := []models.Section{{Name: "meta"}}

		_, _, err := DuplicateSection(sections, primitive.NewObjectID(), nil)
		assert.ErrorIs(t, err, ErrSectionNotFound)
	})
}

func TestNarrowClonePools(t *testing.T) {
	templateID := primitive.NewObjectID()

	t.Run("SiblingsShowOnlyUntakenValues", func(t *testing.T) {
		first := lineItemTemplate(templateID, "Cement", "Sand")
		answer(&first.Fields[0], `"Cement"`)
		second := lineItemTemplate(templateID, "Cement", "Sand")
		answer(&second.Fields[0], `"Sand"`)
		sections := []models.Section{{Name: "meta"}, first, second}

		out := NarrowClonePools(sections, templateID, []string{"General Name"})

		// each clone keeps its own selection and loses its sibling's
		require.Len(t, out[1].Fields[0].Options, 1)
		assert.Equal(t, "Cement", out[1].Fields[0].Options[0].Value)
		require.Len(t, out[2].Fields[0].Options, 1)
		assert.Equal(t, "Sand", out[2].Fields[0].Options[0].Value)

		// inputs untouched
		assert.Len(t, first.Fields[0].Options, 2)

		// with both values placed, a third duplication is refused
		taken := TakenValues(out, templateID, "General Name")
		full := []models.Option{{Value: "Cement"}, {Value: "Sand"}}
		pools := map[string][]models.Option{"General Name": RemainingOptions(full, taken)}
		_, _, err := DuplicateSection(out, templateID, pools)
		assert.ErrorIs(t, err, ErrNoAvailableOptions)
	})

	t.Run("RepeatedNarrowingIsStable", func(t *testing.T) {
		first := lineItemTemplate(templateID, "Cement", "Sand", "Gravel")
		answer(&first.Fields[0], `"Cement"`)
		second := lineItemTemplate(templateID, "Cement", "Sand", "Gravel")
		sections := []models.Section{first, second}

		once := NarrowClonePools(sections, templateID, []string{"General Name"})
		twice := NarrowClonePools(once, templateID, []string{"General Name"})
		assert.Equal(t, once, twice)

		// the unanswered clone sees everything but Cement
		require.Len(t, twice[1].Fields[0].Options, 2)
		assert.Equal(t, "Sand", twice[1].Fields[0].Options[0].Value)
	})
}

func TestTakenValues(t *testing.T) {
	templateID := primitive.NewObjectID()
	first := lineItemTemplate(templateID, "Cement", "Sand", "Gravel")
	answer(&first.Fields[0], `"Cement"`)
	second := lineItemTemplate(templateID, "Cement", "Sand", "Gravel")
	answer(&second.Fields[0], `"Sand"`)
	unanswered := lineItemTemplate(templateID, "Cement", "Sand", "Gravel")

	taken := TakenValues([]models.Section{{Name: "meta"}, first, second, unanswered}, templateID, "General Name")
	assert.ElementsMatch(t, []string{"Cement", "Sand"}, taken)
}

func TestRemainingOptions(t *testing.T) {
	full := []models.Option{{Value: "Cement"}, {Value: "Sand"}, {Value: "Gravel"}}

	remaining := RemainingOptions(full, []string{"Cement", "Gravel"})
	require.Len(t, remaining, 1)
	assert.Equal(t, "Sand", remaining[0].Value)

	assert.Len(t, RemainingOptions(full, nil), 3)
	assert.Empty(t, RemainingOptions(full, []string{"Cement", "Sand", "Gravel"}))
}
