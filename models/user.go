// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the application-level profile of an employee or admin. It is
// distinct from the identity-provider record: UID links the two, and the role
// name plus commission rate are snapshots taken when the profile was created.
// Deleting the profile does not delete the backing identity.
type User struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UID        string             `json:"uid" bson:"uid"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Role       string             `json:"role" bson:"role"`
	RoleID     string             `json:"roleId" bson:"roleId"`
	Commission float64            `json:"commission" bson:"commission"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateUserRequest is the admin payload for provisioning a new employee.
// The password is forwarded to the identity provider and never stored here.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	RoleID   string `json:"roleId" validate:"required"`
}

// Response is the standard API response envelope
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
