package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hiendao/smartclass/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
	RoleParent  = "parent"
)

var AllRoles = []string{RoleAdmin, RoleStudent, RoleParent}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	// RelatedID links a student/parent account to its Student or Parent row.
	RelatedID    string    `json:"relatedId,omitempty"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsParent() bool  { return u.Role == RoleParent }

func (u *User) EntityID() string      { return u.ID }
func (u *User) SetEntityID(id string) { u.ID = id }

func (u *User) Clone() User {
	cp := *u
	if u.PasswordHash != nil {
		cp.PasswordHash = append([]byte(nil), u.PasswordHash...)
	}
	return cp
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Username  string `json:"username" validate:"required,min=2,alphanum_"`
	Password  string `json:"password" validate:"required"`
	FullName  string `json:"fullName" validate:"required"`
	Role      string `json:"role" validate:"required,portalrole"`
	RelatedID string `json:"relatedId" validate:"omitempty"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.FullName = core.CleanString(nu.FullName)
	nu.Role = core.CleanString(nu.Role, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(nu.Username)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	FullName  string `json:"fullName"`
	Password  string `json:"password" validate:"omitempty"`
	Role      string `json:"role" validate:"omitempty,portalrole"`
	RelatedID string `json:"relatedId"`
}

func (uu *UpdateUser) Validate() error {
	uu.FullName = core.CleanString(uu.FullName)
	uu.Role = core.CleanString(uu.Role, true /* lower */)
	return core.Validate.Struct(uu)
}
