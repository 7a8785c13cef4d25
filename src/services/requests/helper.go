package requests

import (
	"context"
	"errors"
	"fmt"

	"Backend-Procure/src/models"
	"Backend-Procure/src/services/signers"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRequestNotFound    = errors.New("request not found")
	ErrRequestNotEditable = errors.New("request can no longer be edited: a signer has already acted")
	ErrRequestNotPending  = errors.New("request is not pending")
)

// validateSections runs the submission-time checks. The first violation found
// is returned; callers surface a single message, not an aggregate.
func validateSections(sections []models.Section) error {
	if len(sections) == 0 {
		return errors.New("request has no sections")
	}

	for _, section := range sections {
		if len(section.Fields) == 0 {
			return fmt.Errorf("section %q is empty", section.Name)
		}
		for _, field := range section.Fields {
			if (field.Type == models.FieldTypeDropdown || field.Type == models.FieldTypeMultiselect) &&
				len(field.Options) == 0 {
				return fmt.Errorf("field %q has no choices", field.Name)
			}
			if !field.IsRequired {
				continue
			}
			v, err := field.DecodedValue()
			if err != nil {
				return fmt.Errorf("field %q has an invalid value: %v", field.Name, err)
			}
			if v.IsEmpty() {
				return fmt.Errorf("field %q is required", field.Name)
			}
		}
	}
	return nil
}

// validateSigners enforces the at-least-one / exactly-one-primary invariant.
func validateSigners(list []models.RequestSigner) error {
	if len(list) == 0 {
		return errors.New("request resolved to no signers")
	}
	primaries := 0
	for _, s := range list {
		if s.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		return fmt.Errorf("request must have exactly one primary signer, got %d", primaries)
	}
	return nil
}

// resolveSigners derives the request's signer list: project-specific signers
// replace the form defaults when present, then special-approver rules overlay
// based on the line items, then the primary flag is normalized.
func resolveSigners(ctx context.Context, form *models.Form, projectID primitive.ObjectID, itemNames []string) ([]models.RequestSigner, error) {
	base := form.Signers

	if !projectID.IsZero() {
		projectSigners, err := signers.GetProjectSignerWithTeamMember(ctx, projectID, form.ID)
		if err != nil {
			return nil, err
		}
		base = signers.ResolveProjectSigners(form.Signers, projectSigners)
	}

	rules, err := signers.GetSpecialApprovers(ctx, form.TeamID)
	if err != nil {
		return nil, err
	}
	base = signers.ApplySpecialApprovers(base, rules, itemNames)
	base = signers.NormalizePrimary(base)

	resolved := make([]models.RequestSigner, len(base))
	for i, s := range base {
		resolved[i] = models.RequestSigner{Signer: s, Status: models.SignerStatusPending}
	}
	return resolved, nil
}

// lineItemNames collects the decoded name-field values of the line-item
// sections (everything after the metadata section).
func lineItemNames(sections []models.Section) []string {
	var names []string
	for _, section := range sections[1:] {
		for _, field := range section.Fields {
			if field.Name != "General Name" {
				continue
			}
			v, err := field.DecodedValue()
			if err == nil && v.Kind == models.ValueString && v.Str != "" {
				names = append(names, v.Str)
			}
		}
	}
	return names
}

// quantityByItem sums the quantity field per item name across line items.
func quantityByItem(sections []models.Section) (map[string]float64, error) {
	totals := make(map[string]float64)
	for _, section := range sections[1:] {
		var name string
		var qty float64
		var hasQty bool
		for _, field := range section.Fields {
			switch field.Name {
			case "General Name":
				v, err := field.DecodedValue()
				if err == nil && v.Kind == models.ValueString {
					name = v.Str
				}
			case "Quantity":
				v, err := field.DecodedValue()
				if err != nil || v.Kind != models.ValueNumber {
					return nil, fmt.Errorf("section %q has an invalid quantity", section.Name)
				}
				qty = v.Num
				hasQty = true
			}
		}
		if name != "" && hasQty {
			totals[name] += qty
		}
	}
	return totals, nil
}

// stampSnapshot fixes ids and stored order on the snapshot before persisting.
// Order is re-derived from position; the in-memory store never renumbers.
func stampSnapshot(request *models.Request) {
	for si := range request.Sections {
		section := &request.Sections[si]
		if section.ID.IsZero() {
			section.ID = primitive.NewObjectID()
		}
		section.FormID = request.FormID
		section.Order = si + 1
		for fi := range section.Fields {
			field := &section.Fields[fi]
			if field.ID.IsZero() {
				field.ID = primitive.NewObjectID()
			}
			field.SectionID = section.ID
			field.Order = fi + 1
			for ri := range field.Responses {
				if field.Responses[ri].ID == "" {
					field.Responses[ri].ID = uuid.NewString()
				}
				field.Responses[ri].FieldID = field.ID
			}
		}
	}
}

// compareStartIndex is where the merge equality scan begins for each form
// kind; earlier fields are covered by the name and quantity rules.
func compareStartIndex(kind models.FormKind) int {
	switch kind {
	case models.FormKindRequisition, models.FormKindSourcedItem:
		return 5
	default:
		return 2
	}
}
