package models

import (
	"time"
)

type Department struct {
	DepartmentID int       `gorm:"primaryKey;column:department_id" json:"department_id"`
	Name         string    `gorm:"column:name" json:"name"`
	Code         string    `gorm:"column:code;unique" json:"code"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}
