package models

import (
	"time"
)

// LetterStatus is the single source of truth for a letter's workflow
// position. The set is closed: every consuming switch must handle all
// six values.
type LetterStatus string

const (
	StatusPendingReview         LetterStatus = "pending_review"
	StatusNeedsMinisterApproval LetterStatus = "needs_minister_approval"
	StatusMinisterApproved      LetterStatus = "minister_approved"
	StatusMinisterRejected      LetterStatus = "minister_rejected"
	StatusForwarded             LetterStatus = "forwarded"
	StatusDelivered             LetterStatus = "delivered"
)

// MinisterDecision is recorded exactly once, when the minister resolves
// a letter that was escalated for approval.
type MinisterDecision string

const (
	DecisionApproved MinisterDecision = "approved"
	DecisionRejected MinisterDecision = "rejected"
)

type Letter struct {
	LetterID    int    `gorm:"primaryKey;column:letter_id" json:"letter_id"`
	Subject     string `gorm:"column:subject" json:"subject"`
	Description string `gorm:"column:description;type:text" json:"description"`

	// Document metadata is set at creation and never mutated afterwards.
	DocumentPath string `gorm:"column:document_path" json:"document_path"`
	DocumentName string `gorm:"column:document_name" json:"document_name"`
	DocumentType string `gorm:"column:document_type" json:"document_type"`
	DocumentSize int64  `gorm:"column:document_size" json:"document_size"`

	// FromDepartmentID is null exactly when the creator is a minister.
	FromDepartmentID *int `gorm:"column:from_department_id" json:"from_department_id,omitempty"`
	ToDepartmentID   *int `gorm:"column:to_department_id" json:"to_department_id,omitempty"`

	RequiresMinister bool         `gorm:"column:requires_minister;default:false" json:"requires_minister"`
	Status           LetterStatus `gorm:"column:status;type:varchar(30);default:'pending_review'" json:"status"`

	CreatedByUserID   int               `gorm:"column:created_by_user_id" json:"created_by_user_id"`
	ReviewedByAdminID *int              `gorm:"column:reviewed_by_admin_id" json:"reviewed_by_admin_id,omitempty"`
	MinisterDecision  *MinisterDecision `gorm:"column:minister_decision;type:varchar(20)" json:"minister_decision,omitempty"`

	ReviewedAt        *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	MinisterDecidedAt *time.Time `gorm:"column:minister_decided_at" json:"minister_decided_at,omitempty"`
	CreatedAt         time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	FromDepartment *Department `gorm:"foreignKey:FromDepartmentID" json:"from_department,omitempty"`
	ToDepartment   *Department `gorm:"foreignKey:ToDepartmentID" json:"to_department,omitempty"`
	Creator        *User       `gorm:"foreignKey:CreatedByUserID" json:"creator,omitempty"`
	AdminReviewer  *User       `gorm:"foreignKey:ReviewedByAdminID" json:"admin_reviewer,omitempty"`
}

func (Letter) TableName() string {
	return "letters"
}

// Terminal reports whether the letter admits no further transitions.
func (l *Letter) Terminal() bool {
	switch l.Status {
	case StatusMinisterRejected, StatusDelivered:
		return true
	case StatusPendingReview, StatusNeedsMinisterApproval, StatusMinisterApproved, StatusForwarded:
		return false
	}
	return false
}
