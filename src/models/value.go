package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ValueKind tags the decoded form of a response value.
type ValueKind string

const (
	ValueEmpty      ValueKind = "empty"
	ValueString     ValueKind = "string"
	ValueNumber     ValueKind = "number"
	ValueBool       ValueKind = "bool"
	ValueStringList ValueKind = "stringList"
	ValueFileRef    ValueKind = "fileRef"
)

// FileReference points at an uploaded attachment.
type FileReference struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FieldValue is the decoded response value. Response.Value stores the
// JSON-encoded form; decoding happens only at this boundary, never ad hoc at
// read sites.
type FieldValue struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	List []string
	File FileReference
}

func StringValue(s string) FieldValue { return FieldValue{Kind: ValueString, Str: s} }
func NumberValue(n float64) FieldValue { return FieldValue{Kind: ValueNumber, Num: n} }
func BoolValue(b bool) FieldValue { return FieldValue{Kind: ValueBool, Bool: b} }
func ListValue(l []string) FieldValue { return FieldValue{Kind: ValueStringList, List: l} }
func FileValue(f FileReference) FieldValue {
	return FieldValue{Kind: ValueFileRef, File: f}
}

func (v FieldValue) IsEmpty() bool {
	return v.Kind == ValueEmpty
}

// EncodeValue renders a FieldValue into the string form stored on a Response.
func EncodeValue(v FieldValue) (string, error) {
	var raw any
	switch v.Kind {
	case ValueEmpty:
		return "", nil
	case ValueString:
		raw = v.Str
	case ValueNumber:
		raw = v.Num
	case ValueBool:
		raw = v.Bool
	case ValueStringList:
		raw = v.List
	case ValueFileRef:
		raw = v.File
	default:
		return "", fmt.Errorf("unknown value kind: %s", v.Kind)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeValue parses a stored response value according to its field type.
// An empty raw string decodes to the empty value for every type.
func DecodeValue(fieldType FieldType, raw string) (FieldValue, error) {
	if raw == "" {
		return FieldValue{Kind: ValueEmpty}, nil
	}

	switch fieldType {
	case FieldTypeNumber:
		var n float64
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return FieldValue{}, fmt.Errorf("number field: %w", err)
		}
		return NumberValue(n), nil

	case FieldTypeSwitch:
		var b bool
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return FieldValue{}, fmt.Errorf("switch field: %w", err)
		}
		return BoolValue(b), nil

	case FieldTypeMultiselect:
		var l []string
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			return FieldValue{}, fmt.Errorf("multiselect field: %w", err)
		}
		return ListValue(l), nil

	case FieldTypeFile:
		var f FileReference
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return FieldValue{}, fmt.Errorf("file field: %w", err)
		}
		return FileValue(f), nil

	case FieldTypeText, FieldTypeTextarea, FieldTypeDropdown,
		FieldTypeDate, FieldTypeTime, FieldTypeLink:
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return FieldValue{}, fmt.Errorf("text-like field: %w", err)
		}
		return StringValue(s), nil

	default:
		return FieldValue{}, errors.New("unknown field type: " + string(fieldType))
	}
}

// DecodedValue decodes f's first response, or the empty value if unanswered.
func (f *Field) DecodedValue() (FieldValue, error) {
	r := f.FirstResponse()
	if r == nil {
		return FieldValue{Kind: ValueEmpty}, nil
	}
	return DecodeValue(f.Type, r.Value)
}
