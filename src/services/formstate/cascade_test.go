package formstate

import (
	"context"
	"errors"
	"testing"

	"Backend-Procure/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubLookup serves canned reference data and counts every fetch.
type stubLookup struct {
	calls int
	fail  bool
}

var errStubLookup = errors.New("reference data unavailable")

func (s *stubLookup) GetItem(ctx context.Context, generalName string) (*models.Item, error) {
	s.calls++
	if s.fail {
		return nil, errStubLookup
	}
	return &models.Item{
		GeneralName: generalName,
		Unit:        "bag",
		GLAccount:   "6100",
		Divisions:   []string{"03"},
	}, nil
}

func (s *stubLookup) GetCSICode(ctx context.Context, description string) (*models.CSICode, error) {
	s.calls++
	if s.fail {
		return nil, errStubLookup
	}
	return &models.CSICode{
		Code:                          "03 30 00",
		Description:                   description,
		DivisionDescription:           "Concrete",
		LevelTwoMajorGroupDescription: "Cast-in-Place Concrete",
		LevelTwoMinorGroupDescription: "Structural Concrete",
	}, nil
}

func (s *stubLookup) GetCSICodeOptionsForItems(ctx context.Context, divisions []string) ([]models.CSICode, error) {
	s.calls++
	if s.fail {
		return nil, errStubLookup
	}
	return []models.CSICode{
		{Description: "Cast-in-Place Concrete"},
		{Description: "Concrete Forming"},
	}, nil
}

func (s *stubLookup) GetService(ctx context.Context, name string) (*models.Service, error) {
	s.calls++
	return &models.Service{
		Name:   name,
		Scopes: []models.ServiceScope{{Name: "Mobilization"}, {Name: "Installation"}},
	}, nil
}

func (s *stubLookup) GetConsumableItem(ctx context.Context, generalName string) (*models.ConsumableItem, error) {
	s.calls++
	return &models.ConsumableItem{GeneralName: generalName, Unit: "box", GLAccount: "6200"}, nil
}

func (s *stubLookup) GetConsumableOptions(ctx context.Context, category string) ([]string, error) {
	s.calls++
	return []string{"Gloves", "Masks"}, nil
}

func (s *stubLookup) GetEquipmentDescription(ctx context.Context, propertyNumber string) (*models.EquipmentDescription, error) {
	s.calls++
	return &models.EquipmentDescription{
		PropertyNumber: propertyNumber,
		Brand:          "Hilti",
		Model:          "TE 70",
		SerialNumber:   "SN-0042",
	}, nil
}

func (s *stubLookup) GetEquipmentPropertyOptions(ctx context.Context, category string) ([]string, error) {
	s.calls++
	return []string{"EQ-001", "EQ-002"}, nil
}

// requisitionSection lays fields out at the indices the requisition cascade
// rules expect.
func requisitionSection() models.Section {
	names := []string{
		"General Name",
		"Quantity",
		"Unit",
		"GL Account",
		"CSI Code Description",
		"CSI Code",
		"Division Description",
		"Level 2 Major Group",
		"Level 2 Minor Group",
	}
	fields := make([]models.Field, len(names))
	for i, n := range names {
		fields[i] = models.Field{Name: n, Type: models.FieldTypeText}
	}
	fields[0].Type = models.FieldTypeDropdown
	fields[4].Type = models.FieldTypeDropdown
	return models.Section{Name: "Line Item", Fields: fields}
}

func str(s string) *string { return &s }

func decoded(t *testing.T, f models.Field) string {
	t.Helper()
	v, err := f.DecodedValue()
	require.NoError(t, err)
	require.Equal(t, models.ValueString, v.Kind)
	return v.Str
}

func TestResolveItemCascade(t *testing.T) {
	lookup := &stubLookup{}
	resolver := NewResolver(lookup)
	store := NewSectionStore([]models.Section{requisitionSection()})

	err := resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Cement"))
	require.NoError(t, err)

	section, err := store.Section(0)
	require.NoError(t, err)

	assert.Equal(t, "Cement", decoded(t, section.Fields[0]))
	assert.Equal(t, "bag", decoded(t, section.Fields[2]))
	assert.Equal(t, "6100", decoded(t, section.Fields[3]))

	// the CSI description field receives an option pool, not a response
	require.Len(t, section.Fields[4].Options, 2)
	assert.Equal(t, "Cast-in-Place Concrete", section.Fields[4].Options[0].Value)
	assert.Empty(t, section.Fields[4].Responses)

	// item plus option pool in a single resolution
	assert.Equal(t, 2, lookup.calls)
}

func TestResolveStampsFreshResponseIDs(t *testing.T) {
	resolver := NewResolver(&stubLookup{})
	store := NewSectionStore([]models.Section{requisitionSection()})

	require.NoError(t, resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Cement")))
	section, _ := store.Section(0)
	firstID := section.Fields[2].Responses[0].ID

	require.NoError(t, resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Sand")))
	section, _ = store.Section(0)
	assert.NotEqual(t, firstID, section.Fields[2].Responses[0].ID)
	assert.NotEmpty(t, section.Fields[2].Responses[0].ID)
}

func TestResolveClearWithoutFetch(t *testing.T) {
	lookup := &stubLookup{}
	resolver := NewResolver(lookup)
	store := NewSectionStore([]models.Section{requisitionSection()})

	require.NoError(t, resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Cement")))
	lookup.calls = 0

	require.NoError(t, resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", nil))

	section, _ := store.Section(0)
	assert.Empty(t, section.Fields[0].Responses)
	assert.Empty(t, section.Fields[2].Responses)
	assert.Empty(t, section.Fields[3].Responses)
	assert.Empty(t, section.Fields[4].Options)
	assert.Zero(t, lookup.calls)
}

func TestResolveLookupFailureResetsDriver(t *testing.T) {
	lookup := &stubLookup{fail: true}
	resolver := NewResolver(lookup)
	store := NewSectionStore([]models.Section{requisitionSection()})

	err := resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Cement"))
	assert.ErrorIs(t, err, ErrLookupFailed)

	section, _ := store.Section(0)
	assert.Empty(t, section.Fields[0].Responses)
	assert.Empty(t, section.Fields[2].Responses)
}

func TestResolveLookupFailureClearsPriorDependents(t *testing.T) {
	lookup := &stubLookup{}
	resolver := NewResolver(lookup)
	store := NewSectionStore([]models.Section{requisitionSection()})

	// a successful selection first, so every dependent field holds data
	require.NoError(t, resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Cement")))
	section, _ := store.Section(0)
	require.NotEmpty(t, section.Fields[2].Responses)
	require.NotEmpty(t, section.Fields[4].Options)

	lookup.fail = true
	err := resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Sand"))
	assert.ErrorIs(t, err, ErrLookupFailed)

	// nothing from the Cement selection may survive the failed switch
	section, _ = store.Section(0)
	assert.Empty(t, section.Fields[0].Responses)
	assert.Empty(t, section.Fields[2].Responses)
	assert.Empty(t, section.Fields[3].Responses)
	assert.Empty(t, section.Fields[4].Options)
	assert.Empty(t, section.Fields[4].Responses)
}

func TestResolveUnknownRule(t *testing.T) {
	resolver := NewResolver(&stubLookup{})
	store := NewSectionStore([]models.Section{requisitionSection()})

	err := resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "Quantity", str("5"))
	assert.ErrorIs(t, err, ErrNoRule)
}

func TestResolveCSICodeCascade(t *testing.T) {
	resolver := NewResolver(&stubLookup{})
	store := NewSectionStore([]models.Section{requisitionSection()})

	err := resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "CSI Code Description", str("Cast-in-Place Concrete"))
	require.NoError(t, err)

	section, _ := store.Section(0)
	assert.Equal(t, "03 30 00", decoded(t, section.Fields[5]))
	assert.Equal(t, "Concrete", decoded(t, section.Fields[6]))
	assert.Equal(t, "Cast-in-Place Concrete", decoded(t, section.Fields[7]))
	assert.Equal(t, "Structural Concrete", decoded(t, section.Fields[8]))
}

func TestResolveNarrowsSharedPoolAcrossClones(t *testing.T) {
	templateID := primitive.NewObjectID()
	mk := func() models.Section {
		s := requisitionSection()
		s.ID = templateID
		s.Fields[0].Options = []models.Option{{Value: "Cement", Order: 0}, {Value: "Sand", Order: 1}}
		return s
	}
	resolver := NewResolver(&stubLookup{})
	store := NewSectionStore([]models.Section{mk(), mk()})

	require.NoError(t, resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Cement")))

	// the sibling clone no longer offers the taken value
	sibling, _ := store.Section(1)
	require.Len(t, sibling.Fields[0].Options, 1)
	assert.Equal(t, "Sand", sibling.Fields[0].Options[0].Value)

	// the selecting clone keeps its own value selectable
	selected, _ := store.Section(0)
	assert.Len(t, selected.Fields[0].Options, 2)

	// clearing the driver returns the value to the sibling's pool
	require.NoError(t, resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", nil))
	sibling, _ = store.Section(1)
	assert.Len(t, sibling.Fields[0].Options, 2)
}

func TestResolveFetchNoneClearsDependents(t *testing.T) {
	lookup := &stubLookup{}
	resolver := NewResolver(lookup)

	section := models.Section{Fields: []models.Field{
		{Name: "Type of Order", Type: models.FieldTypeDropdown},
		{Name: "Project Name", Type: models.FieldTypeDropdown},
		{Name: "Source Requisition", Type: models.FieldTypeDropdown},
		{Name: "Supplier", Type: models.FieldTypeDropdown},
	}}
	section.Fields[2].Responses = []models.Response{{ID: "old", Value: `"REQ-12"`}}
	store := NewSectionStore([]models.Section{section})

	err := resolver.Resolve(context.Background(), store, 0, models.FormKindReleaseOrder, "Type of Order", str("Material"))
	require.NoError(t, err)

	got, _ := store.Section(0)
	assert.Equal(t, "Material", decoded(t, got.Fields[0]))
	assert.Empty(t, got.Fields[2].Responses)
	assert.Empty(t, got.Fields[3].Responses)
	assert.Zero(t, lookup.calls)
}

func TestResolveProjectDriverFiresHook(t *testing.T) {
	resolver := NewResolver(&stubLookup{})

	var hookProject string
	resolver.OnProjectChange = func(ctx context.Context, projectName string) error {
		hookProject = projectName
		return nil
	}

	section := models.Section{Fields: []models.Field{
		{Name: "Project Name", Type: models.FieldTypeDropdown},
	}}
	store := NewSectionStore([]models.Section{section})

	err := resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "Project Name", str("North Plant"))
	require.NoError(t, err)
	assert.Equal(t, "North Plant", hookProject)

	got, _ := store.Section(0)
	assert.Equal(t, "North Plant", decoded(t, got.Fields[0]))
}

func TestResolveInheritsGroupID(t *testing.T) {
	resolver := NewResolver(&stubLookup{})

	group := "group-7"
	section := requisitionSection()
	for i := range section.Fields {
		section.Fields[i].DuplicatableSectionID = &group
	}
	store := NewSectionStore([]models.Section{section})

	err := resolver.Resolve(context.Background(), store, 0, models.FormKindRequisition, "General Name", str("Cement"))
	require.NoError(t, err)

	got, _ := store.Section(0)
	require.Len(t, got.Fields[2].Responses, 1)
	require.NotNil(t, got.Fields[2].Responses[0].DuplicatableSectionID)
	assert.Equal(t, group, *got.Fields[2].Responses[0].DuplicatableSectionID)
}
