package formstate

import (
	"context"
	"fmt"

	"Backend-Procure/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lookup fetches the reference data a driver-field cascade depends on. The
// production implementation queries MongoDB scoped to the caller's team;
// tests substitute a stub.
type Lookup interface {
	GetItem(ctx context.Context, generalName string) (*models.Item, error)
	GetCSICode(ctx context.Context, description string) (*models.CSICode, error)
	GetCSICodeOptionsForItems(ctx context.Context, divisions []string) ([]models.CSICode, error)
	GetService(ctx context.Context, name string) (*models.Service, error)
	GetConsumableItem(ctx context.Context, generalName string) (*models.ConsumableItem, error)
	GetConsumableOptions(ctx context.Context, category string) ([]string, error)
	GetEquipmentDescription(ctx context.Context, propertyNumber string) (*models.EquipmentDescription, error)
	GetEquipmentPropertyOptions(ctx context.Context, category string) ([]string, error)
}

// FetchKind selects which Lookup call a rule issues.
type FetchKind int

const (
	// FetchNone rewrites targets without a lookup (order/request type
	// switches that only reset dependent fields).
	FetchNone FetchKind = iota
	FetchItem
	FetchCSICode
	FetchService
	FetchConsumable
	FetchConsumableOptions
	FetchEquipmentDescription
	FetchEquipmentOptions
	// FetchProject triggers the signer re-resolution hook instead of a
	// sibling rewrite; the project driver affects the whole request.
	FetchProject
)

// RuleKey identifies one driver field within one form kind.
type RuleKey struct {
	Kind   models.FormKind
	Driver string
}

// Target names one sibling field rewritten by a cascade: the field at
// FieldIndex receives either the fetched record's Attribute as its response,
// or, when AsOptions is set, as its selectable option pool.
type Target struct {
	FieldIndex int
	Attribute  string
	AsOptions  bool
}

// Rule is the declarative cascade mapping for one driver field. SharedPool
// marks drivers that select from a finite pool shared across repeated clones
// of the same section; taking or releasing a value re-narrows every sibling
// clone's pool.
type Rule struct {
	Fetch      FetchKind
	Targets    []Target
	SharedPool bool
}

// defaultRules is the cascade table. Which sibling indices a driver rewrites,
// and from which record attribute, is data here, not control flow.
var defaultRules = map[RuleKey]Rule{
	{models.FormKindRequisition, "General Name"}: {
		Fetch:      FetchItem,
		SharedPool: true,
		Targets: []Target{
			{FieldIndex: 2, Attribute: "unit"},
			{FieldIndex: 3, Attribute: "glAccount"},
			{FieldIndex: 4, Attribute: "csiDescriptions", AsOptions: true},
		},
	},
	{models.FormKindRequisition, "CSI Code Description"}: {
		Fetch: FetchCSICode,
		Targets: []Target{
			{FieldIndex: 5, Attribute: "code"},
			{FieldIndex: 6, Attribute: "divisionDescription"},
			{FieldIndex: 7, Attribute: "levelTwoMajor"},
			{FieldIndex: 8, Attribute: "levelTwoMinor"},
		},
	},
	{models.FormKindRequisition, "Project Name"}:   {Fetch: FetchProject},
	{models.FormKindSourcedItem, "Source Project"}: {Fetch: FetchProject},
	{models.FormKindReleaseOrder, "Project Name"}:  {Fetch: FetchProject},
	{models.FormKindReleaseOrder, "Type of Order"}: {
		Fetch: FetchNone,
		Targets: []Target{
			{FieldIndex: 2},
			{FieldIndex: 3},
		},
	},
	{models.FormKindQuotation, "Request Type"}: {
		Fetch: FetchNone,
		Targets: []Target{
			{FieldIndex: 2},
			{FieldIndex: 3},
		},
	},
	{models.FormKindServices, "Service Name"}: {
		Fetch: FetchService,
		Targets: []Target{
			{FieldIndex: 1, Attribute: "scopes", AsOptions: true},
		},
	},
	{models.FormKindSubcon, "Service Name"}: {
		Fetch: FetchService,
		Targets: []Target{
			{FieldIndex: 1, Attribute: "scopes", AsOptions: true},
		},
	},
	{models.FormKindPEDEquipment, "Category"}: {
		Fetch: FetchEquipmentOptions,
		Targets: []Target{
			{FieldIndex: 1, Attribute: "propertyNumbers", AsOptions: true},
		},
	},
	{models.FormKindPEDEquipment, "Equipment Property Number"}: {
		Fetch:      FetchEquipmentDescription,
		SharedPool: true,
		Targets: []Target{
			{FieldIndex: 2, Attribute: "brand"},
			{FieldIndex: 3, Attribute: "model"},
			{FieldIndex: 4, Attribute: "serialNumber"},
		},
	},
	{models.FormKindPEDItem, "Category"}: {
		Fetch: FetchConsumableOptions,
		Targets: []Target{
			{FieldIndex: 1, Attribute: "generalNames", AsOptions: true},
		},
	},
	{models.FormKindPEDItem, "General Name"}: {
		Fetch:      FetchConsumable,
		SharedPool: true,
		Targets: []Target{
			{FieldIndex: 3, Attribute: "unit"},
			{FieldIndex: 4, Attribute: "glAccount"},
		},
	},
}

// record is one fetched reference row flattened into rewritable attributes.
type record struct {
	values  map[string]models.FieldValue
	options map[string][]models.Option
}

// Resolver applies cascade rules to a SectionStore. One Resolver serves one
// open request form; OnProjectChange, when set, re-resolves the request's
// signer list after a project driver change.
type Resolver struct {
	lookup Lookup
	rules  map[RuleKey]Rule

	OnProjectChange func(ctx context.Context, projectName string) error
}

// NewResolver builds a Resolver over the default cascade table.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup, rules: defaultRules}
}

// Resolve handles one driver-field change at sectionIndex. A nil value means
// the driver was cleared: every declared dependent field has its responses
// and options reset without any lookup. A non-nil value issues the rule's
// lookup and rewrites the targets; on lookup failure the driver's own
// response is reset and ErrLookupFailed is returned, leaving no dependent
// field half-populated from the prior selection.
func (r *Resolver) Resolve(ctx context.Context, store *SectionStore, sectionIndex int, kind models.FormKind, driverField string, value *string) error {
	rule, ok := r.rules[RuleKey{Kind: kind, Driver: driverField}]
	if !ok {
		return ErrNoRule
	}

	section, err := store.Section(sectionIndex)
	if err != nil {
		return err
	}
	di := fieldIndexByName(section, driverField)
	if di < 0 {
		return ErrFieldNotFound
	}
	for _, t := range rule.Targets {
		if t.FieldIndex < 0 || t.FieldIndex >= len(section.Fields) {
			return fmt.Errorf("%w: cascade target index %d", ErrFieldNotFound, t.FieldIndex)
		}
	}

	// The rewritten responses inherit the group id of the driver's first
	// response, falling back to the field's own tag for unanswered clones.
	groupID := section.Fields[di].DuplicatableSectionID
	if resp := section.Fields[di].FirstResponse(); resp != nil && resp.DuplicatableSectionID != nil {
		groupID = resp.DuplicatableSectionID
	}

	if value == nil {
		section.Fields[di].Responses = nil
		clearTargets(&section, rule.Targets)
		if err := store.UpdateSection(sectionIndex, section); err != nil {
			return err
		}
		renarrowSharedPool(store, rule, section.ID, driverField)
		return nil
	}

	switch rule.Fetch {
	case FetchNone:
		setResponse(&section.Fields[di], models.StringValue(*value), groupID)
		clearTargets(&section, rule.Targets)
		return store.UpdateSection(sectionIndex, section)

	case FetchProject:
		setResponse(&section.Fields[di], models.StringValue(*value), groupID)
		if err := store.UpdateSection(sectionIndex, section); err != nil {
			return err
		}
		if r.OnProjectChange != nil {
			return r.OnProjectChange(ctx, *value)
		}
		return nil
	}

	rec, err := r.fetchRecord(ctx, rule.Fetch, *value)
	if err != nil {
		section.Fields[di].Responses = nil
		clearTargets(&section, rule.Targets)
		if uerr := store.UpdateSection(sectionIndex, section); uerr != nil {
			return uerr
		}
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	setResponse(&section.Fields[di], models.StringValue(*value), groupID)
	for _, t := range rule.Targets {
		target := &section.Fields[t.FieldIndex]
		if t.AsOptions {
			target.Options = rec.options[t.Attribute]
			target.Responses = nil
			continue
		}
		v, ok := rec.values[t.Attribute]
		if !ok || v.IsEmpty() {
			target.Responses = nil
			continue
		}
		setResponse(target, v, groupID)
	}
	if err := store.UpdateSection(sectionIndex, section); err != nil {
		return err
	}
	renarrowSharedPool(store, rule, section.ID, driverField)
	return nil
}

// renarrowSharedPool rewrites sibling clones' pools after a shared-pool driver
// takes or releases a value.
func renarrowSharedPool(store *SectionStore, rule Rule, sectionID primitive.ObjectID, driverField string) {
	if !rule.SharedPool {
		return
	}
	store.ReplaceAll(NarrowClonePools(store.Sections(), sectionID, []string{driverField}))
}

// fetchRecord issues the rule's lookup and flattens the result.
func (r *Resolver) fetchRecord(ctx context.Context, fetch FetchKind, value string) (record, error) {
	switch fetch {
	case FetchItem:
		item, err := r.lookup.GetItem(ctx, value)
		if err != nil {
			return record{}, err
		}
		csiCodes, err := r.lookup.GetCSICodeOptionsForItems(ctx, item.Divisions)
		if err != nil {
			return record{}, err
		}
		opts := make([]models.Option, len(csiCodes))
		for i, c := range csiCodes {
			opts[i] = models.Option{Value: c.Description, Order: i}
		}
		return record{
			values: map[string]models.FieldValue{
				"unit":      models.StringValue(item.Unit),
				"glAccount": models.StringValue(item.GLAccount),
			},
			options: map[string][]models.Option{"csiDescriptions": opts},
		}, nil

	case FetchCSICode:
		csi, err := r.lookup.GetCSICode(ctx, value)
		if err != nil {
			return record{}, err
		}
		return record{
			values: map[string]models.FieldValue{
				"code":                models.StringValue(csi.Code),
				"divisionDescription": models.StringValue(csi.DivisionDescription),
				"levelTwoMajor":       models.StringValue(csi.LevelTwoMajorGroupDescription),
				"levelTwoMinor":       models.StringValue(csi.LevelTwoMinorGroupDescription),
			},
		}, nil

	case FetchService:
		svc, err := r.lookup.GetService(ctx, value)
		if err != nil {
			return record{}, err
		}
		opts := make([]models.Option, len(svc.Scopes))
		for i, s := range svc.Scopes {
			opts[i] = models.Option{Value: s.Name, Order: i}
		}
		return record{options: map[string][]models.Option{"scopes": opts}}, nil

	case FetchConsumable:
		item, err := r.lookup.GetConsumableItem(ctx, value)
		if err != nil {
			return record{}, err
		}
		return record{
			values: map[string]models.FieldValue{
				"unit":      models.StringValue(item.Unit),
				"glAccount": models.StringValue(item.GLAccount),
			},
		}, nil

	case FetchConsumableOptions:
		names, err := r.lookup.GetConsumableOptions(ctx, value)
		if err != nil {
			return record{}, err
		}
		return record{options: map[string][]models.Option{"generalNames": stringOptions(names)}}, nil

	case FetchEquipmentDescription:
		desc, err := r.lookup.GetEquipmentDescription(ctx, value)
		if err != nil {
			return record{}, err
		}
		return record{
			values: map[string]models.FieldValue{
				"brand":        models.StringValue(desc.Brand),
				"model":        models.StringValue(desc.Model),
				"serialNumber": models.StringValue(desc.SerialNumber),
			},
		}, nil

	case FetchEquipmentOptions:
		numbers, err := r.lookup.GetEquipmentPropertyOptions(ctx, value)
		if err != nil {
			return record{}, err
		}
		return record{options: map[string][]models.Option{"propertyNumbers": stringOptions(numbers)}}, nil
	}

	return record{}, fmt.Errorf("unsupported fetch kind: %d", fetch)
}

func fieldIndexByName(section models.Section, name string) int {
	for i := range section.Fields {
		if section.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

func clearTargets(section *models.Section, targets []Target) {
	for _, t := range targets {
		section.Fields[t.FieldIndex].Responses = nil
		if t.AsOptions || t.Attribute == "" {
			section.Fields[t.FieldIndex].Options = nil
		}
	}
}

// setResponse overwrites the field's single response. The fresh uuid makes
// downstream diffing treat the response as changed.
func setResponse(field *models.Field, value models.FieldValue, groupID *string) {
	encoded, err := models.EncodeValue(value)
	if err != nil {
		field.Responses = nil
		return
	}
	field.Responses = []models.Response{{
		ID:                    uuid.NewString(),
		FieldID:               field.ID,
		Value:                 encoded,
		DuplicatableSectionID: groupID,
	}}
}

func stringOptions(values []string) []models.Option {
	opts := make([]models.Option, len(values))
	for i, v := range values {
		opts[i] = models.Option{Value: v, Order: i}
	}
	return opts
}
