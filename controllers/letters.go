package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"letter-routing-api/middleware"
	"letter-routing-api/services"
	"letter-routing-api/utils"
	"letter-routing-api/utils/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateLetter accepts a multipart form: subject, optional description,
// optional requires_minister flag, and the document file. The upload
// completes before the letter row is written; a failed insert removes
// the stored file again.
func CreateLetter(c *gin.Context) {
	userID, role, departmentID, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Authorization context missing"})
		return
	}

	subject := utils.SanitizeInput(c.PostForm("subject"))
	if subject == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Subject is required"})
		return
	}
	description := utils.SanitizeInput(c.PostForm("description"))

	requiresMinister := c.PostForm("requires_minister")
	requiresMinisterBool := requiresMinister == "true" || requiresMinister == "1"

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Document file is required"})
		return
	}
	if fileHeader.Size > utils.MaxDocumentSize {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Document exceeds the 10MB limit"})
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if !utils.ValidDocumentType(mimeType) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Document must be a pdf, doc or docx file"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	key := fmt.Sprintf("documents/%d-%s%s", userID, uuid.NewString(), ext)

	if err := storage.Save(c.Request.Context(), fileHeader, key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document"})
		return
	}

	letter, err := services.NewLetterService(nil).CreateLetter(&services.CreateLetterInput{
		CallerUserID:       userID,
		CallerRole:         role,
		CallerDepartmentID: departmentID,
		Subject:            subject,
		Description:        description,
		RequiresMinister:   requiresMinisterBool,
		DocumentPath:       key,
		DocumentName:       fileHeader.Filename,
		DocumentType:       mimeType,
		DocumentSize:       fileHeader.Size,
	})
	if err != nil {
		go cleanupDocument(key)
		status, msg := letterErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": letter})
}

// ListInbox returns the letters awaiting the caller, scoped by role.
func ListInbox(c *gin.Context) {
	userID, role, departmentID, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Authorization context missing"})
		return
	}

	letters, err := services.NewLetterService(nil).Inbox(role, departmentID, userID)
	if err != nil {
		status, msg := letterErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": letters})
}

// ListSent returns the letters the caller originated.
func ListSent(c *gin.Context) {
	userID, role, departmentID, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Authorization context missing"})
		return
	}

	letters, err := services.NewLetterService(nil).Sent(role, departmentID, userID)
	if err != nil {
		status, msg := letterErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": letters})
}

// DownloadDocument serves the letter's stored document: a redirect to a
// presigned URL on S3, a file attachment on local storage.
func DownloadDocument(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid letter ID"})
		return
	}

	letter, err := services.NewLetterService(nil).GetLetter(id)
	if err != nil {
		status, msg := letterErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if letter.DocumentPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No document found"})
		return
	}

	download, err := storage.GetDownload(c.Request.Context(), letter.DocumentPath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document file not found"})
		return
	}

	if download.URL != "" {
		c.Redirect(http.StatusTemporaryRedirect, download.URL)
		return
	}
	c.FileAttachment(download.FilePath, letter.DocumentName)
}

// cleanupDocument removes a stored document after a failed letter
// insert. A failed removal leaves an orphaned file, so it is logged
// with the key for manual cleanup.
func cleanupDocument(key string) {
	if err := storage.Delete(context.Background(), key); err != nil {
		log.Printf("Failed to remove orphaned document %s: %v", key, err)
	}
}

// letterErrorStatus maps workflow errors onto HTTP statuses: 404 for
// missing letters, 409 for transitions the current status forbids, 422
// for parameter problems.
func letterErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrLetterNotFound):
		return http.StatusNotFound, "Letter not found"
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict, "Letter is not in a state that allows this action"
	case errors.Is(err, services.ErrUnknownDepartment),
		errors.Is(err, services.ErrMissingSubject),
		errors.Is(err, services.ErrMissingDocument),
		errors.Is(err, services.ErrInvalidReviewAction),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrMissingTargetDepartment),
		errors.Is(err, services.ErrCallerDepartmentMissing),
		errors.Is(err, services.ErrRoleCannotCreate):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "Internal error"
}
