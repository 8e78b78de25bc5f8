package controllers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"letter-routing-api/config"
	"letter-routing-api/models"
	"letter-routing-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var sendMailFunc = config.SendMail

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ForgotPassword issues a single-use reset token and emails the link.
func ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	req.Email = utils.SanitizeInput(req.Email)
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
			return
		}

		// Always answer success for unknown addresses to avoid email enumeration.
		c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset link has been sent."})
		return
	}

	rawToken, err := generateResetToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	now := time.Now()

	// Invalidate earlier tokens so only the most recent link works.
	if err := config.DB.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used = ?", user.UserID, false).
		Updates(map[string]interface{}{"used": true, "used_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare reset token"})
		return
	}

	token := models.PasswordResetToken{
		UserID:    user.UserID,
		TokenHash: hashResetToken(rawToken),
		ExpiresAt: now.Add(models.PasswordResetTokenTTL),
	}
	if err := config.DB.Create(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reset token"})
		return
	}

	// A mail failure must not change the response: a distinct error here
	// would reveal which addresses have accounts.
	resetLink := buildResetLink(rawToken)
	if err := sendMailFunc([]string{user.Email}, "Reset your password", renderResetEmail(user.Name, resetLink)); err != nil {
		log.Printf("Failed to send password reset email to user %d: %v", user.UserID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset link has been sent."})
}

// ResetPassword consumes a reset token and sets the new password.
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var token models.PasswordResetToken
	if err := config.DB.Where("token_hash = ?", hashResetToken(req.Token)).First(&token).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	now := time.Now()
	if err := token.Consume(config.DB, now); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to secure password"})
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("user_id = ?", token.UserID).
		Update("password", hashed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashResetToken stores a digest rather than the raw token so a leaked
// table cannot be replayed.
func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func buildResetLink(rawToken string) string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/reset-password?token=%s", base, url.QueryEscape(rawToken))
}

func renderResetEmail(name, link string) string {
	return fmt.Sprintf(
		`<p>Hello %s,</p><p>A password reset was requested for your account. The link below is valid for one hour:</p><p><a href="%s">Reset password</a></p><p>If you did not request this, you can ignore this email.</p>`,
		template.HTMLEscapeString(name),
		link,
	)
}
