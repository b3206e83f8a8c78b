package models

import "time"

type UserRole string

const (
	RoleScrumMaster UserRole = "scrum_master"
	RoleEmployee    UserRole = "employee"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == RoleScrumMaster || r == RoleEmployee
}

type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName string    `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName  string    `gorm:"type:varchar(255);not null" json:"lastName"`
	Avatar    *string   `gorm:"type:text" json:"avatar"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch holds the fields a profile update may change. Password is
// plaintext here and gets hashed by the store before it is merged.
type UserPatch struct {
	Username  *string          `json:"username"`
	Email     *string          `json:"email"`
	Password  *string          `json:"password"`
	FirstName *string          `json:"firstName"`
	LastName  *string          `json:"lastName"`
	Avatar    Optional[string] `json:"avatar"`
	Role      *UserRole        `json:"role"`
}

// Apply merges every field except Password, which needs hashing first.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	p.Avatar.apply(&u.Avatar)
	if p.Role != nil {
		u.Role = *p.Role
	}
}
