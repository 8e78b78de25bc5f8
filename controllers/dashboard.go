package controllers

import (
	"net/http"

	"letter-routing-api/config"
	"letter-routing-api/middleware"
	"letter-routing-api/models"

	"github.com/gin-gonic/gin"
)

type statusCount struct {
	Status models.LetterStatus `json:"status"`
	Count  int64               `json:"count"`
}

// GetDashboardStats returns role-scoped workflow counters. Each role
// only sees aggregates over the letters its inbox/sent views expose.
func GetDashboardStats(c *gin.Context) {
	userID, role, departmentID, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Authorization context missing"})
		return
	}

	switch role {
	case models.RoleRecordOffice:
		var counts []statusCount
		if err := config.DB.Model(&models.Letter{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&counts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"role":      role,
			"by_status": counts,
		})

	case models.RoleMinister:
		var pending, decided int64
		if err := config.DB.Model(&models.Letter{}).
			Where("status = ?", models.StatusNeedsMinisterApproval).
			Count(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		if err := config.DB.Model(&models.Letter{}).
			Where("status IN ?", []models.LetterStatus{models.StatusMinisterApproved, models.StatusMinisterRejected}).
			Count(&decided).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		var created int64
		if err := config.DB.Model(&models.Letter{}).
			Where("from_department_id IS NULL AND created_by_user_id = ?", userID).
			Count(&created).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"role":            role,
			"awaiting_review": pending,
			"decided":         decided,
			"created_by_me":   created,
		})

	case models.RoleDepartment:
		if departmentID == nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Caller has no department"})
			return
		}

		var received, sent int64
		if err := config.DB.Model(&models.Letter{}).
			Where("to_department_id = ?", *departmentID).
			Count(&received).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		if err := config.DB.Model(&models.Letter{}).
			Where("from_department_id = ?", *departmentID).
			Count(&sent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"role":     role,
			"received": received,
			"sent":     sent,
		})

	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Unknown role"})
	}
}
