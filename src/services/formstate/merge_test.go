package formstate

import (
	"testing"

	"Backend-Procure/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineItem builds a merged-shape line item section: name, quantity, then
// arbitrary compared fields as name/raw pairs.
func lineItem(name, quantity string, compared ...[2]string) models.Section {
	fields := []models.Field{
		{Name: "General Name", Type: models.FieldTypeDropdown,
			Responses: []models.Response{{ID: "n-" + name, Value: `"` + name + `"`}}},
		{Name: "Quantity", Type: models.FieldTypeNumber,
			Responses: []models.Response{{ID: "q-" + name, Value: quantity}}},
	}
	for _, c := range compared {
		fields = append(fields, models.Field{
			Name:      c[0],
			Type:      models.FieldTypeText,
			Responses: []models.Response{{Value: c[1]}},
		})
	}
	return models.Section{Name: "Line Item", Fields: fields}
}

func quantityValue(t *testing.T, s models.Section) float64 {
	t.Helper()
	i := fieldIndexByName(s, "Quantity")
	require.GreaterOrEqual(t, i, 0)
	v, err := s.Fields[i].DecodedValue()
	require.NoError(t, err)
	require.Equal(t, models.ValueNumber, v.Kind)
	return v.Num
}

func TestMergeSectionsSumsQuantities(t *testing.T) {
	meta := models.Section{Name: "Request Details"}
	sections := []models.Section{
		meta,
		lineItem("Cement", "10"),
		lineItem("Cement", "15"),
	}

	merged, err := MergeSections(sections, MergeOptions{})
	require.NoError(t, err)
	require.Len(t, merged, 2)

	assert.Equal(t, "Request Details", merged[0].Name)
	assert.Equal(t, 25.0, quantityValue(t, merged[1]))
	// survivor keeps its own response id
	assert.Equal(t, "q-Cement", merged[1].Fields[1].Responses[0].ID)

	// caller's sections are untouched
	assert.Equal(t, "10", sections[1].Fields[1].Responses[0].Value)
	assert.Equal(t, "15", sections[2].Fields[1].Responses[0].Value)
}

func TestMergeSectionsKeepsOrderOfFirstOccurrence(t *testing.T) {
	sections := []models.Section{
		{Name: "Request Details"},
		lineItem("Cement", "10"),
		lineItem("Sand", "3"),
		lineItem("Cement", "5"),
	}

	merged, err := MergeSections(sections, MergeOptions{})
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, 15.0, quantityValue(t, merged[1]))
	assert.Equal(t, 3.0, quantityValue(t, merged[2]))
}

func TestMergeSectionsDifferingComparedFieldDoesNotMerge(t *testing.T) {
	sections := []models.Section{
		{Name: "Request Details"},
		lineItem("Cement", "10", [2]string{"Brand", `"Holcim"`}),
		lineItem("Cement", "15", [2]string{"Brand", `"Lafarge"`}),
	}

	merged, err := MergeSections(sections, MergeOptions{})
	require.NoError(t, err)
	assert.Len(t, merged, 3)
}

func TestMergeSectionsCompareStartIndexSkipsEarlyFields(t *testing.T) {
	// the compared field sits at index 2; starting the scan at 3 ignores it
	sections := []models.Section{
		{Name: "Request Details"},
		lineItem("Cement", "10", [2]string{"Remarks", `"urgent"`}),
		lineItem("Cement", "15", [2]string{"Remarks", `"standard"`}),
	}

	merged, err := MergeSections(sections, MergeOptions{CompareStartIndex: 3})
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, 25.0, quantityValue(t, merged[1]))
}

func TestMergeSectionsInvalidQuantity(t *testing.T) {
	t.Run("NonNumericQuantity", func(t *testing.T) {
		sections := []models.Section{
			{Name: "Request Details"},
			lineItem("Cement", "10"),
			lineItem("Cement", `"many"`),
		}

		_, err := MergeSections(sections, MergeOptions{})
		var invalid *InvalidQuantityError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "Cement", invalid.ItemName)
		assert.Equal(t, `"many"`, invalid.Raw)
	})

	t.Run("MissingQuantityResponse", func(t *testing.T) {
		broken := lineItem("Cement", "10")
		broken.Fields[1].Responses = nil
		sections := []models.Section{
			{Name: "Request Details"},
			lineItem("Cement", "10"),
			broken,
		}

		_, err := MergeSections(sections, MergeOptions{})
		var invalid *InvalidQuantityError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestMergeSectionsSingleSectionPassesThrough(t *testing.T) {
	sections := []models.Section{{Name: "Request Details"}}

	merged, err := MergeSections(sections, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, sections, merged)
}

func TestMergeSectionsUnnamedSectionsKept(t *testing.T) {
	// sections without a name-field value never merge with each other
	blankA := lineItem("", "1")
	blankB := lineItem("", "2")
	sections := []models.Section{{Name: "Request Details"}, blankA, blankB}

	merged, err := MergeSections(sections, MergeOptions{})
	require.NoError(t, err)
	assert.Len(t, merged, 3)
}
