package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the lifecycle state of a submitted request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusCanceled RequestStatus = "canceled"
)

// RequestSigner is a signer resolved onto one request, with its action state.
type RequestSigner struct {
	Signer  `bson:",inline"`
	Status  SignerStatus `bson:"status" json:"status"`
	ActedAt *time.Time   `bson:"actedAt,omitempty" json:"actedAt,omitempty"`
}

// --- Request ---
// A submitted instance of a form. Sections are a snapshot taken at submission
// time, after the line-item merge pass.
type Request struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FormID      primitive.ObjectID `bson:"formId" json:"formId"`
	TeamID      primitive.ObjectID `bson:"teamId" json:"teamId"`
	RequestorID primitive.ObjectID `bson:"requestorId" json:"requestorId"`
	Kind        FormKind           `bson:"kind" json:"kind"`
	Status      RequestStatus      `bson:"status" json:"status"`
	ProjectID   primitive.ObjectID `bson:"projectId,omitempty" json:"projectId,omitempty"`
	// SourceRequestID links a quotation or release order to the request it
	// draws quantities from.
	SourceRequestID primitive.ObjectID `bson:"sourceRequestId,omitempty" json:"sourceRequestId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`

	Sections []Section       `bson:"sections,omitempty" json:"sections,omitempty"`
	Signers  []RequestSigner `bson:"signers,omitempty" json:"signers,omitempty"`
}

// RequestDto is the submission payload from the client. DraftID names the
// working draft the submission supersedes, if one was saved.
type RequestDto struct {
	FormID          string    `json:"formId" validate:"required"`
	ProjectID       string    `json:"projectId"`
	SourceRequestID string    `json:"sourceRequestId"`
	DraftID         string    `json:"draftId"`
	Sections        []Section `json:"sections" validate:"required,min=1"`
	Signers         []Signer  `json:"signers"`
}

// QuantityCheck reports one line item whose requested quantity exceeds what the
// source request still has available.
type QuantityCheck struct {
	ItemName  string  `json:"itemName"`
	Requested float64 `json:"requested"`
	Available float64 `json:"available"`
}
