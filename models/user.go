package models

import (
	"time"
)

// Role is the workflow role carried by every user and every JWT.
type Role string

const (
	RoleDepartment   Role = "department"
	RoleRecordOffice Role = "record_office"
	RoleMinister     Role = "minister"
)

// ValidRole reports whether the given value is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleDepartment, RoleRecordOffice, RoleMinister:
		return true
	}
	return false
}

// UserStatus marks whether an account may authenticate.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

type User struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	Password     string     `gorm:"column:password" json:"-"`
	Role         Role       `gorm:"column:role;type:varchar(20)" json:"role"`
	DepartmentID *int       `gorm:"column:department_id" json:"department_id,omitempty"`
	Status       UserStatus `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsRecordOffice() bool {
	return u.Role == RoleRecordOffice
}

func (u *User) IsActive() bool {
	return u.Status == UserActive
}
