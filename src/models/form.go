package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldType enumerates the renderable field kinds a section may carry.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeDropdown    FieldType = "dropdown"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeDate        FieldType = "date"
	FieldTypeTime        FieldType = "time"
	FieldTypeSwitch      FieldType = "switch"
	FieldTypeLink        FieldType = "link"
	FieldTypeFile        FieldType = "file"
)

// FormKind identifies which request form a template belongs to. The cascade
// rule table is keyed by it.
type FormKind string

const (
	FormKindRequisition  FormKind = "requisition"
	FormKindSourcedItem  FormKind = "sourcedItem"
	FormKindQuotation    FormKind = "quotation"
	FormKindReleaseOrder FormKind = "releaseOrder"
	FormKindSubcon       FormKind = "subcon"
	FormKindServices     FormKind = "services"
	FormKindPEDEquipment FormKind = "pedEquipment"
	FormKindPEDItem      FormKind = "pedItem"
)

// --- Form ---
type Form struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID      primitive.ObjectID `bson:"teamId" json:"teamId"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Kind        FormKind           `bson:"kind" json:"kind" validate:"required"`
	IsHidden    bool               `bson:"isHidden" json:"isHidden"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`

	Sections []Section `bson:"sections,omitempty" json:"sections,omitempty"`
	Signers  []Signer  `bson:"signers,omitempty" json:"signers,omitempty"`
}

// --- Section ---
type Section struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormID         primitive.ObjectID `bson:"formId,omitempty" json:"formId,omitempty"`
	Name           string             `bson:"name" json:"name" validate:"required"`
	Order          int                `bson:"order" json:"order"`
	IsDuplicatable bool               `bson:"isDuplicatable" json:"isDuplicatable"`

	Fields []Field `bson:"fields,omitempty" json:"fields,omitempty"`
}

// --- Field ---
// DuplicatableSectionID groups all fields belonging to one cloned instance of a
// repeatable section. It is assigned once at clone time and never mutated; nil
// means the field sits in the original, non-cloned section.
type Field struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SectionID  primitive.ObjectID `bson:"sectionId,omitempty" json:"sectionId,omitempty"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	Type       FieldType          `bson:"type" json:"type" validate:"required"`
	IsRequired bool               `bson:"isRequired" json:"isRequired"`
	IsReadOnly bool               `bson:"isReadOnly" json:"isReadOnly"`
	Order      int                `bson:"order" json:"order"`

	Options               []Option   `bson:"options,omitempty" json:"options,omitempty"`
	Responses             []Response `bson:"responses,omitempty" json:"responses,omitempty"`
	DuplicatableSectionID *string    `bson:"duplicatableSectionId,omitempty" json:"duplicatableSectionId,omitempty"`
}

// --- Option ---
type Option struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FieldID primitive.ObjectID `bson:"fieldId,omitempty" json:"fieldId,omitempty"`
	Value   string             `bson:"value" json:"value"`
	Order   int                `bson:"order" json:"order"`
}

// --- Response ---
// ID is a uuid, not an ObjectID: cascade rewrites stamp a fresh one so
// downstream diffing treats the response as changed.
type Response struct {
	ID                    string             `bson:"responseId" json:"responseId"`
	FieldID               primitive.ObjectID `bson:"fieldId,omitempty" json:"fieldId,omitempty"`
	Value                 string             `bson:"value" json:"value"`
	DuplicatableSectionID *string            `bson:"duplicatableSectionId,omitempty" json:"duplicatableSectionId,omitempty"`
}

// FirstResponse returns the field's response, or nil before first answer.
func (f *Field) FirstResponse() *Response {
	if len(f.Responses) == 0 {
		return nil
	}
	return &f.Responses[0]
}
