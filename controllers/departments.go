package controllers

import (
	"letter-routing-api/config"
	"letter-routing-api/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDepartments lists every department for addressing letters.
func GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := config.DB.Select("department_id", "name", "code").
		Order("name").
		Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": departments})
}
