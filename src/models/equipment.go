package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Equipment ---
type Equipment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID   primitive.ObjectID `bson:"teamId" json:"teamId"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Category string             `bson:"category" json:"category"`

	Descriptions []EquipmentDescription `bson:"descriptions,omitempty" json:"descriptions,omitempty"`
}

// EquipmentDescription is one physical unit, identified by property number.
// Property numbers form the shared pool behind the equipment selector field.
type EquipmentDescription struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EquipmentID    primitive.ObjectID `bson:"equipmentId,omitempty" json:"equipmentId,omitempty"`
	PropertyNumber string             `bson:"propertyNumber" json:"propertyNumber" validate:"required"`
	Brand          string             `bson:"brand" json:"brand"`
	Model          string             `bson:"model" json:"model"`
	SerialNumber   string             `bson:"serialNumber" json:"serialNumber"`
	IsAvailable    bool               `bson:"isAvailable" json:"isAvailable"`
}
