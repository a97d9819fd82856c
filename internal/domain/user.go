package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleRegular = "regular"
)

type User struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Name      string    `json:"name" dynamodbav:"name"`
	Education string    `json:"education,omitempty" dynamodbav:"education"`
	LinkedIn  string    `json:"linkedin,omitempty" dynamodbav:"linkedin"`
	Phone     string    `json:"phone,omitempty" dynamodbav:"phone"`
	Location  string    `json:"location,omitempty" dynamodbav:"location"`
	Role      string    `json:"role" dynamodbav:"role"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// UpsertUserRequest is the body of PUT /user/{email}. Role is accepted only
// when explicitly supplied; an absent role never overwrites the stored one.
type UpsertUserRequest struct {
	Name      *string `json:"name"`
	Education *string `json:"education"`
	LinkedIn  *string `json:"linkedin"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
	Role      *string `json:"role" validate:"omitempty,oneof=regular admin"`
}

// UpdateProfileRequest is the body of PATCH /user/{id}. It is restricted to
// exactly these five profile fields; role is never reachable through it.
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Education *string `json:"education"`
	LinkedIn  *string `json:"linkedin"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
}
