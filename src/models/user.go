package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- User ---
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Password  string             `bson:"password" json:"-"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// --- TeamMember ---
// Membership of a user in one team, with its role. Request processors are
// team members with the "processor" role.
type TeamMember struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	TeamID primitive.ObjectID `bson:"teamId" json:"teamId"`
	Role   string             `bson:"role" json:"role"` // owner | admin | processor | member

	User *User `bson:"user,omitempty" json:"user,omitempty"`
}

// --- Notification ---
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamMemberID primitive.ObjectID `bson:"teamMemberId" json:"teamMemberId"`
	RequestID    primitive.ObjectID `bson:"requestId" json:"requestId"`
	Type         string             `bson:"type" json:"type"`
	Message      string             `bson:"message" json:"message"`
	IsRead       bool               `bson:"isRead" json:"isRead"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// LoginRequest / LoginResponse for the auth endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
