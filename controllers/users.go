package controllers

import (
	"errors"
	"letter-routing-api/config"
	"letter-routing-api/models"
	"letter-routing-api/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createUserRequest struct {
	Name         string      `json:"name" binding:"required"`
	Email        string      `json:"email" binding:"required,email"`
	Password     string      `json:"password" binding:"required,min=8"`
	Role         models.Role `json:"role" binding:"required"`
	DepartmentID *int        `json:"department_id"`
}

type updateUserRequest struct {
	Name         *string            `json:"name"`
	Email        *string            `json:"email"`
	Role         *models.Role       `json:"role"`
	DepartmentID *int               `json:"department_id"`
	Status       *models.UserStatus `json:"status"`
}

// departmentRules rejects role/department combinations the workflow
// cannot authorize: department users need a department, the other two
// roles must not have one.
func departmentRules(role models.Role, departmentID *int) (int, string) {
	if role == models.RoleDepartment && departmentID == nil {
		return http.StatusUnprocessableEntity, "Department is required for department users"
	}
	if role != models.RoleDepartment && departmentID != nil {
		return http.StatusUnprocessableEntity, "Department should not be set for minister or record office users"
	}
	return 0, ""
}

// GetUsers lists all users with their departments.
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Preload("Department").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// CreateUser registers a new account.
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown role"})
		return
	}
	if code, msg := departmentRules(req.Role, req.DepartmentID); code != 0 {
		c.JSON(code, gin.H{"error": msg})
		return
	}

	if req.DepartmentID != nil {
		var count int64
		if err := config.DB.Model(&models.Department{}).
			Where("department_id = ?", *req.DepartmentID).
			Count(&count).Error; err != nil || count == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown department"})
			return
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to secure password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     hashed,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		Status:       models.UserActive,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	}

	config.DB.Preload("Department").First(&user, user.UserID)
	c.JSON(http.StatusCreated, gin.H{"data": user})
}

// GetUser returns a single user.
func GetUser(c *gin.Context) {
	user, ok := loadUserParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// UpdateUser applies partial updates to an account.
func UpdateUser(c *gin.Context) {
	user, ok := loadUserParam(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := user.Role
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown role"})
			return
		}
		role = *req.Role
	}

	departmentID := user.DepartmentID
	if req.Role != nil || req.DepartmentID != nil {
		departmentID = req.DepartmentID
	}
	if code, msg := departmentRules(role, departmentID); code != 0 {
		c.JSON(code, gin.H{"error": msg})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		if !utils.ValidateEmail(*req.Email) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid email format"})
			return
		}
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = role
		updates["department_id"] = departmentID
	} else if req.DepartmentID != nil {
		updates["department_id"] = departmentID
	}
	if req.Status != nil {
		if *req.Status != models.UserActive && *req.Status != models.UserSuspended {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown status"})
			return
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
	}

	config.DB.Preload("Department").First(&user, user.UserID)
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// SuspendUser blocks an account from authenticating. Record office
// accounts cannot be suspended.
func SuspendUser(c *gin.Context) {
	user, ok := loadUserParam(c)
	if !ok {
		return
	}

	if user.IsRecordOffice() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot suspend record office users"})
		return
	}

	if err := config.DB.Model(&user).Update("status", models.UserSuspended).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suspend user"})
		return
	}

	config.DB.Preload("Department").First(&user, user.UserID)
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// ActivateUser re-enables a suspended account.
func ActivateUser(c *gin.Context) {
	user, ok := loadUserParam(c)
	if !ok {
		return
	}

	if err := config.DB.Model(&user).Update("status", models.UserActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate user"})
		return
	}

	config.DB.Preload("Department").First(&user, user.UserID)
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// DeleteUser removes an account. Users with associated letters are kept
// so the letters' creator and reviewer references stay resolvable.
func DeleteUser(c *gin.Context) {
	user, ok := loadUserParam(c)
	if !ok {
		return
	}

	if user.IsRecordOffice() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete record office users"})
		return
	}

	var letterCount int64
	if err := config.DB.Model(&models.Letter{}).
		Where("created_by_user_id = ? OR reviewed_by_admin_id = ?", user.UserID, user.UserID).
		Count(&letterCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check user letters"})
		return
	}
	if letterCount > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cannot delete user with associated letters"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func loadUserParam(c *gin.Context) (models.User, bool) {
	var user models.User

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return user, false
	}

	if err := config.DB.Preload("Department").Where("user_id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		}
		return user, false
	}

	return user, true
}
