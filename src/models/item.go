package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Item ---
// A purchasable general item. Divisions narrow which CSI codes apply to it.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID      primitive.ObjectID `bson:"teamId" json:"teamId"`
	GeneralName string             `bson:"generalName" json:"generalName" validate:"required"`
	Unit        string             `bson:"unit" json:"unit" validate:"required"`
	GLAccount   string             `bson:"glAccount" json:"glAccount" validate:"required"`
	Divisions   []string           `bson:"divisions" json:"divisions"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt"`

	Descriptions []ItemDescription `bson:"descriptions,omitempty" json:"descriptions,omitempty"`
}

// ItemDescription is one description axis of an item (brand, size, grade...),
// each with its own option pool.
type ItemDescription struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ItemID primitive.ObjectID `bson:"itemId,omitempty" json:"itemId,omitempty"`
	Label  string             `bson:"label" json:"label"`
	Order  int                `bson:"order" json:"order"`
	Values []string           `bson:"values" json:"values"`
}

// --- CSICode ---
type CSICode struct {
	ID                            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code                          string             `bson:"code" json:"code" validate:"required"`
	Description                   string             `bson:"description" json:"description" validate:"required"`
	DivisionID                    string             `bson:"divisionId" json:"divisionId"`
	DivisionDescription           string             `bson:"divisionDescription" json:"divisionDescription"`
	LevelTwoMajorGroupDescription string             `bson:"levelTwoMajorGroupDescription" json:"levelTwoMajorGroupDescription"`
	LevelTwoMinorGroupDescription string             `bson:"levelTwoMinorGroupDescription" json:"levelTwoMinorGroupDescription"`
}

// --- Supplier ---
type Supplier struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID primitive.ObjectID `bson:"teamId" json:"teamId"`
	Name   string             `bson:"name" json:"name" validate:"required"`
}

// --- ServiceScope ---
// One scope axis of a contracted service, rendered as a field of the given type.
type Service struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID primitive.ObjectID `bson:"teamId" json:"teamId"`
	Name   string             `bson:"name" json:"name" validate:"required"`

	Scopes []ServiceScope `bson:"scopes,omitempty" json:"scopes,omitempty"`
}

type ServiceScope struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ServiceID primitive.ObjectID `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Type      FieldType          `bson:"type" json:"type"`
	Options   []string           `bson:"options" json:"options"`
}

// --- ConsumableItem ---
type ConsumableItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID      primitive.ObjectID `bson:"teamId" json:"teamId"`
	GeneralName string             `bson:"generalName" json:"generalName" validate:"required"`
	Unit        string             `bson:"unit" json:"unit"`
	GLAccount   string             `bson:"glAccount" json:"glAccount"`
	Category    string             `bson:"category" json:"category"`
}
