package formstate

import (
	"Backend-Procure/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DuplicateSection clones the template section identified by templateSectionID
// into a fresh repeatable line item. Every field and response of the clone is
// stamped with a newly generated group id, responses are reset, and fields
// listed in pools get the currently-available option subset instead of the
// template's full pool.
//
// The returned insert position is immediately after the last existing clone of
// the same template, keeping repeated line items visually grouped.
//
// Duplication is refused with ErrNoAvailableOptions when any supplied pool is
// empty; no input section is mutated in that case.
func DuplicateSection(
	sections []models.Section,
	templateSectionID primitive.ObjectID,
	pools map[string][]models.Option,
) (models.Section, int, error) {
	lastIndex := -1
	var template *models.Section
	for i := range sections {
		if sections[i].ID == templateSectionID {
			lastIndex = i
			if template == nil {
				template = &sections[i]
			}
		}
	}
	if template == nil {
		return models.Section{}, 0, ErrSectionNotFound
	}

	for _, pool := range pools {
		if len(pool) == 0 {
			return models.Section{}, 0, ErrNoAvailableOptions
		}
	}

	groupID := uuid.NewString()

	clone := *template
	clone.Fields = make([]models.Field, len(template.Fields))
	for i, f := range template.Fields {
		nf := f
		nf.DuplicatableSectionID = &groupID
		nf.Responses = nil

		if pool, ok := pools[f.Name]; ok {
			nf.Options = make([]models.Option, len(pool))
			copy(nf.Options, pool)
		} else {
			nf.Options = make([]models.Option, len(f.Options))
			copy(nf.Options, f.Options)
		}
		clone.Fields[i] = nf
	}

	return clone, lastIndex + 1, nil
}

// TakenValues collects the decoded selector values already placed for the
// named field across all clones of a template section. Unanswered and
// undecodable responses are skipped.
func TakenValues(sections []models.Section, templateSectionID primitive.ObjectID, fieldName string) []string {
	var taken []string
	for i := range sections {
		if sections[i].ID != templateSectionID {
			continue
		}
		for _, f := range sections[i].Fields {
			if f.Name != fieldName {
				continue
			}
			v, err := f.DecodedValue()
			if err != nil || v.Kind != models.ValueString || v.Str == "" {
				continue
			}
			taken = append(taken, v.Str)
		}
	}
	return taken
}

// NarrowClonePools recomputes the shared-pool selector options of every clone
// of a template after a sibling takes or releases a value. Each clone's pool
// becomes the full pool minus the values selected by the other clones, so a
// clone always keeps its own selection selectable while taken values vanish
// from its siblings. The full pool is reconstructed as the union of the
// clones' current pools, which is stable across repeated narrowing passes.
func NarrowClonePools(sections []models.Section, templateSectionID primitive.ObjectID, poolFields []string) []models.Section {
	out := make([]models.Section, len(sections))
	copy(out, sections)

	for _, name := range poolFields {
		full := unionPool(out, templateSectionID, name)
		if full == nil {
			continue
		}
		for i := range out {
			if out[i].ID != templateSectionID {
				continue
			}
			fields := make([]models.Field, len(out[i].Fields))
			copy(fields, out[i].Fields)
			for fi := range fields {
				if fields[fi].Name != name {
					continue
				}
				fields[fi].Options = RemainingOptions(full, takenByOthers(out, templateSectionID, name, i))
			}
			out[i].Fields = fields
		}
	}
	return out
}

// unionPool merges the named field's option pools across all clones, first
// occurrence order.
func unionPool(sections []models.Section, templateSectionID primitive.ObjectID, fieldName string) []models.Option {
	var full []models.Option
	seen := make(map[string]bool)
	for i := range sections {
		if sections[i].ID != templateSectionID {
			continue
		}
		for _, f := range sections[i].Fields {
			if f.Name != fieldName {
				continue
			}
			for _, o := range f.Options {
				if seen[o.Value] {
					continue
				}
				seen[o.Value] = true
				full = append(full, o)
			}
		}
	}
	return full
}

// takenByOthers collects the values selected for the named field by clones
// other than the one at skipIndex.
func takenByOthers(sections []models.Section, templateSectionID primitive.ObjectID, fieldName string, skipIndex int) []string {
	var taken []string
	for i := range sections {
		if i == skipIndex || sections[i].ID != templateSectionID {
			continue
		}
		for _, f := range sections[i].Fields {
			if f.Name != fieldName {
				continue
			}
			v, err := f.DecodedValue()
			if err != nil || v.Kind != models.ValueString || v.Str == "" {
				continue
			}
			taken = append(taken, v.Str)
		}
	}
	return taken
}

// RemainingOptions filters a full option pool down to the values not yet taken.
func RemainingOptions(full []models.Option, taken []string) []models.Option {
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}
	var remaining []models.Option
	for _, o := range full {
		if !used[o.Value] {
			remaining = append(remaining, o)
		}
	}
	return remaining
}
