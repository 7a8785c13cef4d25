package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SignerAction is the action label a signer performs on a request.
type SignerAction string

const (
	SignerActionApprove  SignerAction = "approve"
	SignerActionNote     SignerAction = "note"
	SignerActionPurchase SignerAction = "purchase"
)

// SignerStatus tracks whether a signer has acted on a request.
type SignerStatus string

const (
	SignerStatusPending  SignerStatus = "pending"
	SignerStatusApproved SignerStatus = "approved"
	SignerStatusRejected SignerStatus = "rejected"
)

// --- Signer ---
// Exactly one signer per request carries IsPrimary.
type Signer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormID       primitive.ObjectID `bson:"formId,omitempty" json:"formId,omitempty"`
	ProjectID    primitive.ObjectID `bson:"projectId,omitempty" json:"projectId,omitempty"`
	TeamMemberID primitive.ObjectID `bson:"teamMemberId" json:"teamMemberId" validate:"required"`
	Action       SignerAction       `bson:"action" json:"action" validate:"required"`
	IsPrimary    bool               `bson:"isPrimary" json:"isPrimary"`
	Order        int                `bson:"order" json:"order"`

	TeamMember *TeamMember `bson:"teamMember,omitempty" json:"teamMember,omitempty"`
}

// --- SpecialApprover ---
// A rule adding an approver whenever one of its trigger item names appears as a
// line item on a request. Special approvers supersede base signers with the
// same team member id.
type SpecialApprover struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID    primitive.ObjectID `bson:"teamId" json:"teamId"`
	Signer    Signer             `bson:"signer" json:"signer"`
	ItemNames []string           `bson:"itemNames" json:"itemNames"`
}
