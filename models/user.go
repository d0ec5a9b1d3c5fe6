package models

// Role is the access level a user holds. Dependent members inherit their
// parent's account and never get one of their own.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

// RoleLookup resolves a user's role once per request.
type RoleLookup interface {
	RoleOf(userID int) (Role, error)
}

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // "-" means this field won't be included in JSON
}

type CreateMemberRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ParentID  int    `json:"parent_id"`
}

type UpdateMemberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Active    *bool  `json:"active"`
}

type MemberResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Active    bool   `json:"active"`
	ParentID  int    `json:"parent_id,omitempty"`
	CreatedAt string `json:"created_at"`
}
