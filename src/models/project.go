package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Project ---
// A project site. Requests filed against a project inherit its signer list.
type Project struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID   primitive.ObjectID `bson:"teamId" json:"teamId"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	SiteCode string             `bson:"siteCode" json:"siteCode"`
	Initials string             `bson:"initials" json:"initials"`

	Signers []Signer `bson:"signers,omitempty" json:"signers,omitempty"`
}
