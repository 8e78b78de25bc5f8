package controllers

import (
	"net/http"
	"strconv"

	"letter-routing-api/middleware"
	"letter-routing-api/services"

	"github.com/gin-gonic/gin"
)

type adminReviewRequest struct {
	Action         string `json:"action" binding:"required"`
	ToDepartmentID *int   `json:"to_department_id"`
}

type ministerDecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

type forwardRequest struct {
	ToDepartmentID int `json:"to_department_id" binding:"required"`
}

// AdminReview resolves a pending_review letter: escalate it to the
// minister or forward it straight to a department. Record office only;
// the role gate runs before this handler touches the letter.
func AdminReview(c *gin.Context) {
	letterID, ok := letterIDParam(c)
	if !ok {
		return
	}

	var req adminReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, _, _, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Authorization context missing"})
		return
	}

	letter, err := services.NewLetterService(nil).AdminReview(&services.AdminReviewInput{
		LetterID:       letterID,
		ReviewerID:     userID,
		Action:         req.Action,
		ToDepartmentID: req.ToDepartmentID,
	})
	if err != nil {
		status, msg := letterErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": letter})
}

// MinisterDecision records the minister's approval or rejection of an
// escalated letter. The decision is immutable; repeating the call hits
// the status guard and yields a conflict.
func MinisterDecision(c *gin.Context) {
	letterID, ok := letterIDParam(c)
	if !ok {
		return
	}

	var req ministerDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	letter, err := services.NewLetterService(nil).MinisterDecision(letterID, req.Decision)
	if err != nil {
		status, msg := letterErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": letter})
}

// ForwardLetter delivers a minister-approved or already forwarded
// letter to its destination department.
func ForwardLetter(c *gin.Context) {
	letterID, ok := letterIDParam(c)
	if !ok {
		return
	}

	var req forwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	letter, err := services.NewLetterService(nil).Forward(letterID, req.ToDepartmentID)
	if err != nil {
		status, msg := letterErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": letter})
}

func letterIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid letter ID"})
		return 0, false
	}
	return id, true
}
