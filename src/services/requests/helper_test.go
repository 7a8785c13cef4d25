package requests

import (
	"testing"

	"Backend-Procure/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func answered(name string, ft models.FieldType, raw string) models.Field {
	f := models.Field{Name: name, Type: ft}
	if raw != "" {
		f.Responses = []models.Response{{Value: raw}}
	}
	return f
}

func TestValidateSections(t *testing.T) {
	t.Run("NoSections", func(t *testing.T) {
		assert.Error(t, validateSections(nil))
	})

	t.Run("EmptySection", func(t *testing.T) {
		err := validateSections([]models.Section{{Name: "Details"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})

	t.Run("DropdownWithoutChoices", func(t *testing.T) {
		sections := []models.Section{{Name: "Details", Fields: []models.Field{
			{Name: "Project Name", Type: models.FieldTypeDropdown},
		}}}
		err := validateSections(sections)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no choices")
	})

	t.Run("RequiredUnanswered", func(t *testing.T) {
		sections := []models.Section{{Name: "Details", Fields: []models.Field{
			{Name: "Purpose", Type: models.FieldTypeText, IsRequired: true},
		}}}
		err := validateSections(sections)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("FirstViolationWins", func(t *testing.T) {
		sections := []models.Section{
			{Name: "Details", Fields: []models.Field{
				{Name: "Purpose", Type: models.FieldTypeText, IsRequired: true},
			}},
			{Name: "Broken"},
		}
		err := validateSections(sections)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Purpose")
	})

	t.Run("Valid", func(t *testing.T) {
		sections := []models.Section{{Name: "Details", Fields: []models.Field{
			answered("Purpose", models.FieldTypeText, `"restock"`),
			{
				Name: "Project Name", Type: models.FieldTypeDropdown,
				Options: []models.Option{{Value: "North Plant"}},
			},
		}}}
		sections[0].Fields[0].IsRequired = true
		assert.NoError(t, validateSections(sections))
	})
}

func TestValidateSigners(t *testing.T) {
	primary := models.RequestSigner{Signer: models.Signer{IsPrimary: true}}
	secondary := models.RequestSigner{}

	assert.Error(t, validateSigners(nil))
	assert.Error(t, validateSigners([]models.RequestSigner{secondary}))
	assert.Error(t, validateSigners([]models.RequestSigner{primary, primary}))
	assert.NoError(t, validateSigners([]models.RequestSigner{primary, secondary}))
}

func TestLineItemNames(t *testing.T) {
	sections := []models.Section{
		{Name: "Details"},
		{Name: "Line Item", Fields: []models.Field{answered("General Name", models.FieldTypeDropdown, `"Cement"`)}},
		{Name: "Line Item", Fields: []models.Field{answered("General Name", models.FieldTypeDropdown, "")}},
		{Name: "Line Item", Fields: []models.Field{answered("General Name", models.FieldTypeDropdown, `"Rebar"`)}},
	}

	assert.Equal(t, []string{"Cement", "Rebar"}, lineItemNames(sections))
}

func TestQuantityByItem(t *testing.T) {
	sections := []models.Section{
		{Name: "Details"},
		{Name: "Line Item", Fields: []models.Field{
			answered("General Name", models.FieldTypeDropdown, `"Cement"`),
			answered("Quantity", models.FieldTypeNumber, "10"),
		}},
		{Name: "Line Item", Fields: []models.Field{
			answered("General Name", models.FieldTypeDropdown, `"Cement"`),
			answered("Quantity", models.FieldTypeNumber, "5"),
		}},
		{Name: "Line Item", Fields: []models.Field{
			answered("General Name", models.FieldTypeDropdown, `"Rebar"`),
			answered("Quantity", models.FieldTypeNumber, "2"),
		}},
	}

	totals, err := quantityByItem(sections)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Cement": 15, "Rebar": 2}, totals)

	sections[1].Fields[1].Responses[0].Value = `"ten"`
	_, err = quantityByItem(sections)
	assert.Error(t, err)
}

func TestStampSnapshot(t *testing.T) {
	request := &models.Request{
		FormID: primitive.NewObjectID(),
		Sections: []models.Section{
			{Name: "Details", Order: 99, Fields: []models.Field{
				answered("Purpose", models.FieldTypeText, `"restock"`),
			}},
			{Name: "Line Item", Fields: []models.Field{
				answered("General Name", models.FieldTypeDropdown, `"Cement"`),
			}},
		},
	}

	stampSnapshot(request)

	for si, section := range request.Sections {
		assert.False(t, section.ID.IsZero())
		assert.Equal(t, request.FormID, section.FormID)
		assert.Equal(t, si+1, section.Order)
		for fi, field := range section.Fields {
			assert.False(t, field.ID.IsZero())
			assert.Equal(t, section.ID, field.SectionID)
			assert.Equal(t, fi+1, field.Order)
			for _, resp := range field.Responses {
				assert.NotEmpty(t, resp.ID)
				assert.Equal(t, field.ID, resp.FieldID)
			}
		}
	}
}

func TestCompareStartIndex(t *testing.T) {
	assert.Equal(t, 5, compareStartIndex(models.FormKindRequisition))
	assert.Equal(t, 5, compareStartIndex(models.FormKindSourcedItem))
	assert.Equal(t, 2, compareStartIndex(models.FormKindQuotation))
	assert.Equal(t, 2, compareStartIndex(models.FormKindPEDItem))
}
