package formstate

import (
	"fmt"

	"Backend-Procure/src/models"
)

// MergeOptions parameterizes the submission-time merge pass.
type MergeOptions struct {
	// NameField is the merge key field. Default "General Name".
	NameField string
	// QuantityField is summed instead of compared. Default "Quantity".
	QuantityField string
	// CompareStartIndex is the first field index included in the equality
	// scan. Fields before it (and the name/quantity fields anywhere) are
	// not compared.
	CompareStartIndex int
}

func (o *MergeOptions) applyDefaults() {
	if o.NameField == "" {
		o.NameField = "General Name"
	}
	if o.QuantityField == "" {
		o.QuantityField = "Quantity"
	}
}

// InvalidQuantityError reports a line item whose quantity response is missing
// or not a number. Quantities are a submission contract; they are rejected
// here instead of letting NaN propagate into stored totals.
type InvalidQuantityError struct {
	SectionName string
	ItemName    string
	Raw         string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q for item %q in section %q", e.Raw, e.ItemName, e.SectionName)
}

// MergeSections collapses duplicated line-item sections that represent the
// same logical item before a request is persisted. The first section is
// request-level metadata and passes through untouched. Two sections merge
// when their name-field values are equal and every compared field matches;
// the survivor's quantity becomes the sum. Output preserves the order of
// first occurrence.
func MergeSections(sections []models.Section, opts MergeOptions) ([]models.Section, error) {
	opts.applyDefaults()

	if len(sections) <= 1 {
		out := make([]models.Section, len(sections))
		copy(out, sections)
		return out, nil
	}

	// Accepted sections are deep-copied so summing a quantity never writes
	// through to the caller's slices.
	unique := make([]models.Section, 0, len(sections))
	unique = append(unique, cloneSection(sections[0]))

	for _, section := range sections[1:] {
		key, err := mergeKey(section, opts.NameField)
		if err != nil {
			return nil, err
		}

		merged := false
		for u := 1; u < len(unique); u++ {
			otherKey, err := mergeKey(unique[u], opts.NameField)
			if err != nil {
				return nil, err
			}
			if key == "" || key != otherKey {
				continue
			}
			if !comparableFieldsEqual(section, unique[u], opts) {
				continue
			}

			sum, err := sumQuantities(&unique[u], section, opts, key)
			if err != nil {
				return nil, err
			}
			if err := writeQuantity(&unique[u], opts.QuantityField, sum); err != nil {
				return nil, err
			}
			merged = true
			break
		}

		if !merged {
			unique = append(unique, cloneSection(section))
		}
	}

	return unique, nil
}

func cloneSection(s models.Section) models.Section {
	out := s
	out.Fields = make([]models.Field, len(s.Fields))
	for i, f := range s.Fields {
		nf := f
		nf.Responses = make([]models.Response, len(f.Responses))
		copy(nf.Responses, f.Responses)
		out.Fields[i] = nf
	}
	return out
}

// mergeKey is the decoded value of the section's name field.
func mergeKey(section models.Section, nameField string) (string, error) {
	i := fieldIndexByName(section, nameField)
	if i < 0 {
		return "", nil
	}
	v, err := section.Fields[i].DecodedValue()
	if err != nil {
		return "", err
	}
	if v.Kind != models.ValueString {
		return "", nil
	}
	return v.Str, nil
}

func comparableFieldsEqual(a, b models.Section, opts MergeOptions) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := opts.CompareStartIndex; i < len(a.Fields); i++ {
		name := a.Fields[i].Name
		if name == opts.NameField || name == opts.QuantityField {
			continue
		}
		if rawValue(a.Fields[i]) != rawValue(b.Fields[i]) {
			return false
		}
	}
	return true
}

func rawValue(f models.Field) string {
	if r := f.FirstResponse(); r != nil {
		return r.Value
	}
	return ""
}

func sumQuantities(kept *models.Section, incoming models.Section, opts MergeOptions, itemName string) (float64, error) {
	a, err := quantityOf(*kept, opts.QuantityField, itemName)
	if err != nil {
		return 0, err
	}
	b, err := quantityOf(incoming, opts.QuantityField, itemName)
	if err != nil {
		return 0, err
	}
	return a + b, nil
}

func quantityOf(section models.Section, quantityField, itemName string) (float64, error) {
	i := fieldIndexByName(section, quantityField)
	if i < 0 {
		return 0, &InvalidQuantityError{SectionName: section.Name, ItemName: itemName}
	}
	resp := section.Fields[i].FirstResponse()
	if resp == nil {
		return 0, &InvalidQuantityError{SectionName: section.Name, ItemName: itemName}
	}
	v, err := models.DecodeValue(models.FieldTypeNumber, resp.Value)
	if err != nil || v.Kind != models.ValueNumber {
		return 0, &InvalidQuantityError{SectionName: section.Name, ItemName: itemName, Raw: resp.Value}
	}
	return v.Num, nil
}

func writeQuantity(section *models.Section, quantityField string, sum float64) error {
	i := fieldIndexByName(*section, quantityField)
	if i < 0 {
		return &InvalidQuantityError{SectionName: section.Name}
	}
	encoded, err := models.EncodeValue(models.NumberValue(sum))
	if err != nil {
		return err
	}
	// Keep the surviving response's id and group tag; only the value moves.
	field := &section.Fields[i]
	if len(field.Responses) == 0 {
		return &InvalidQuantityError{SectionName: section.Name}
	}
	field.Responses[0].Value = encoded
	return nil
}
