package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrResetTokenExpired = errors.New("password reset token expired")
	ErrResetTokenUsed    = errors.New("password reset token already used")
)

// PasswordResetTokenTTL is how long a reset link stays valid.
const PasswordResetTokenTTL = time.Hour

// PasswordResetToken stores only a digest of the emailed token.
type PasswordResetToken struct {
	TokenID   int        `gorm:"primaryKey;column:token_id" json:"token_id"`
	UserID    int        `gorm:"column:user_id;index" json:"user_id"`
	TokenHash string     `gorm:"column:token_hash;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"column:expires_at" json:"expires_at"`
	Used      bool       `gorm:"column:used;default:false" json:"used"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Consume marks the token used with a guarded update so two concurrent
// resets cannot both succeed on the same token.
func (t *PasswordResetToken) Consume(tx *gorm.DB, now time.Time) error {
	if t.Used {
		return ErrResetTokenUsed
	}
	if t.Expired(now) {
		return ErrResetTokenExpired
	}

	usedAt := now
	res := tx.Model(&PasswordResetToken{}).
		Where("token_id = ? AND used = ? AND expires_at > ?", t.TokenID, false, now).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": usedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrResetTokenUsed
	}

	t.Used = true
	t.UsedAt = &usedAt
	return nil
}
