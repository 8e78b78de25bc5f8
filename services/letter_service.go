package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"letter-routing-api/config"
	"letter-routing-api/models"

	"gorm.io/gorm"
)

// Review actions accepted by AdminReview.
const (
	ReviewForward       = "forward"
	ReviewNeedsMinister = "needs_minister"
)

// recordOfficeSentLimit caps the record office fallback sent view, which
// is system-wide rather than department-scoped.
const recordOfficeSentLimit = 50

var (
	ErrLetterNotFound          = errors.New("letter not found")
	ErrInvalidState            = errors.New("letter status does not allow this action")
	ErrUnknownDepartment       = errors.New("target department does not exist")
	ErrMissingSubject          = errors.New("subject is required")
	ErrMissingDocument         = errors.New("document metadata is required")
	ErrInvalidReviewAction     = errors.New("review action must be 'forward' or 'needs_minister'")
	ErrInvalidDecision         = errors.New("decision must be 'approved' or 'rejected'")
	ErrMissingTargetDepartment = errors.New("to_department_id is required")
	ErrCallerDepartmentMissing = errors.New("caller has no department")
	ErrRoleCannotCreate        = errors.New("only department users and ministers create letters")
)

// transitionSources declares, per mutating action, the statuses the
// action may be applied from. Everything else is an invalid-state
// rejection; there is no other path through the workflow.
var transitionSources = map[LetterAction][]models.LetterStatus{
	ActionAdminReview:      {models.StatusPendingReview},
	ActionMinisterDecision: {models.StatusNeedsMinisterApproval},
	ActionForward:          {models.StatusMinisterApproved, models.StatusForwarded},
}

// CanApply reports whether an action is legal from the given status.
// Pure; the persisted check in applyTransition enforces the same table
// atomically.
func CanApply(from models.LetterStatus, action LetterAction) bool {
	for _, src := range transitionSources[action] {
		if from == src {
			return true
		}
	}
	return false
}

// LetterService owns every read and write of the letters table. All
// status transitions go through applyTransition so that concurrent
// requests against the same letter serialize on the row's current
// status.
type LetterService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLetterService(db *gorm.DB) *LetterService {
	if db == nil {
		db = config.DB
	}
	return &LetterService{db: db, now: time.Now}
}

// CreateLetterInput carries the caller identity triple plus the letter
// fields. Document metadata comes from the storage layer, which must
// have completed the upload before this is called.
type CreateLetterInput struct {
	CallerUserID       int
	CallerRole         models.Role
	CallerDepartmentID *int

	Subject          string
	Description      string
	RequiresMinister bool

	DocumentPath string
	DocumentName string
	DocumentType string
	DocumentSize int64
}

// CreateLetter validates the input and inserts the letter in
// pending_review. FromDepartmentID is null exactly when the creator is
// a minister; department users must carry their department.
func (s *LetterService) CreateLetter(in *CreateLetterInput) (*models.Letter, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return nil, ErrMissingSubject
	}
	if in.DocumentPath == "" || in.DocumentName == "" {
		return nil, ErrMissingDocument
	}

	var fromDepartmentID *int
	switch in.CallerRole {
	case models.RoleMinister:
		fromDepartmentID = nil
	case models.RoleDepartment:
		if in.CallerDepartmentID == nil {
			return nil, ErrCallerDepartmentMissing
		}
		fromDepartmentID = in.CallerDepartmentID
	default:
		return nil, ErrRoleCannotCreate
	}

	letter := models.Letter{
		Subject:          strings.TrimSpace(in.Subject),
		Description:      in.Description,
		DocumentPath:     in.DocumentPath,
		DocumentName:     in.DocumentName,
		DocumentType:     in.DocumentType,
		DocumentSize:     in.DocumentSize,
		FromDepartmentID: fromDepartmentID,
		ToDepartmentID:   nil, // assigned by a later admin-review or forward
		RequiresMinister: in.RequiresMinister,
		Status:           models.StatusPendingReview,
		CreatedByUserID:  in.CallerUserID,
	}

	if err := s.db.Create(&letter).Error; err != nil {
		return nil, fmt.Errorf("failed to create letter: %w", err)
	}

	return &letter, nil
}

// AdminReviewInput is the record office's resolution of a
// pending_review letter: escalate to the minister or route directly.
type AdminReviewInput struct {
	LetterID       int
	ReviewerID     int
	Action         string
	ToDepartmentID *int
}

// AdminReview applies the pending_review fan-out. The target department
// is resolved before the write so a validation failure leaves the row
// untouched.
func (s *LetterService) AdminReview(in *AdminReviewInput) (*models.Letter, error) {
	action := strings.ToLower(strings.TrimSpace(in.Action))

	now := s.now()
	updates := map[string]interface{}{
		"reviewed_by_admin_id": in.ReviewerID,
		"reviewed_at":          now,
		"updated_at":           now,
	}

	switch action {
	case ReviewNeedsMinister:
		updates["status"] = models.StatusNeedsMinisterApproval
		updates["requires_minister"] = true
	case ReviewForward:
		if in.ToDepartmentID == nil {
			return nil, ErrMissingTargetDepartment
		}
		if err := s.departmentExists(*in.ToDepartmentID); err != nil {
			return nil, err
		}
		updates["status"] = models.StatusForwarded
		updates["to_department_id"] = *in.ToDepartmentID
	default:
		return nil, ErrInvalidReviewAction
	}

	return s.applyTransition(in.LetterID, ActionAdminReview, updates)
}

// MinisterDecision resolves a needs_minister_approval letter. The
// decision and its timestamp are written together and never rewritten:
// a second call fails the status guard.
func (s *LetterService) MinisterDecision(letterID int, decision string) (*models.Letter, error) {
	var target models.LetterStatus
	switch models.MinisterDecision(strings.ToLower(strings.TrimSpace(decision))) {
	case models.DecisionApproved:
		target = models.StatusMinisterApproved
	case models.DecisionRejected:
		target = models.StatusMinisterRejected
	default:
		return nil, ErrInvalidDecision
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":              target,
		"minister_decision":   strings.ToLower(strings.TrimSpace(decision)),
		"minister_decided_at": now,
		"updated_at":          now,
	}

	return s.applyTransition(letterID, ActionMinisterDecision, updates)
}

// Forward finalizes either a minister-approved or a directly routed
// letter by (re)assigning the destination department. Delivered is
// terminal; forwarding a delivered letter is an invalid-state error.
func (s *LetterService) Forward(letterID int, toDepartmentID int) (*models.Letter, error) {
	if err := s.departmentExists(toDepartmentID); err != nil {
		return nil, err
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":           models.StatusDelivered,
		"to_department_id": toDepartmentID,
		"updated_at":       now,
	}

	return s.applyTransition(letterID, ActionForward, updates)
}

// applyTransition performs the atomic compare-and-write: the UPDATE
// carries the action's required source statuses in its WHERE clause, so
// of two concurrent requests only one can match the row. The loser (or
// a caller using a stale id) is told apart by a follow-up read.
func (s *LetterService) applyTransition(letterID int, action LetterAction, updates map[string]interface{}) (*models.Letter, error) {
	res := s.db.Model(&models.Letter{}).
		Where("letter_id = ? AND status IN ?", letterID, transitionSources[action]).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update letter: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		var current models.Letter
		if err := s.db.Where("letter_id = ?", letterID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLetterNotFound
			}
			return nil, fmt.Errorf("failed to load letter: %w", err)
		}
		return nil, ErrInvalidState
	}

	return s.GetLetter(letterID)
}

func (s *LetterService) departmentExists(departmentID int) error {
	var count int64
	if err := s.db.Model(&models.Department{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check department: %w", err)
	}
	if count == 0 {
		return ErrUnknownDepartment
	}
	return nil
}

// GetLetter loads a letter with its department and user relations.
func (s *LetterService) GetLetter(letterID int) (*models.Letter, error) {
	var letter models.Letter
	if err := s.withRelations().Where("letter_id = ?", letterID).First(&letter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLetterNotFound
		}
		return nil, fmt.Errorf("failed to load letter: %w", err)
	}
	return &letter, nil
}

// Inbox returns the letters awaiting the caller's attention. The
// visible set depends on the role: the record office sees intake and
// resolved-decision letters it still has to route, the minister sees
// escalations, a department sees letters addressed to it.
func (s *LetterService) Inbox(role models.Role, departmentID *int, userID int) ([]models.Letter, error) {
	query := s.withRelations().Order("created_at DESC")

	switch role {
	case models.RoleRecordOffice:
		query = query.Where("status IN ?", []models.LetterStatus{
			models.StatusPendingReview,
			models.StatusMinisterApproved,
			models.StatusMinisterRejected,
		})
	case models.RoleMinister:
		query = query.Where("status = ?", models.StatusNeedsMinisterApproval)
	case models.RoleDepartment:
		if departmentID == nil {
			return nil, ErrCallerDepartmentMissing
		}
		query = query.Where("to_department_id = ?", *departmentID)
	default:
		return []models.Letter{}, nil
	}

	var letters []models.Letter
	if err := query.Find(&letters).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch inbox: %w", err)
	}
	return letters, nil
}

// Sent returns the letters the caller originated. Ministers are matched
// by creator since their letters carry no from-department; the record
// office, which creates nothing, gets the most recent letters
// system-wide as a tracking view.
func (s *LetterService) Sent(role models.Role, departmentID *int, userID int) ([]models.Letter, error) {
	query := s.withRelations().Order("created_at DESC")

	switch role {
	case models.RoleDepartment:
		if departmentID == nil {
			return nil, ErrCallerDepartmentMissing
		}
		query = query.Where("from_department_id = ?", *departmentID)
	case models.RoleMinister:
		query = query.Where("from_department_id IS NULL AND created_by_user_id = ?", userID)
	case models.RoleRecordOffice:
		query = query.Limit(recordOfficeSentLimit)
	default:
		return []models.Letter{}, nil
	}

	var letters []models.Letter
	if err := query.Find(&letters).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sent letters: %w", err)
	}
	return letters, nil
}

func (s *LetterService) withRelations() *gorm.DB {
	return s.db.Model(&models.Letter{}).
		Preload("FromDepartment").
		Preload("ToDepartment").
		Preload("Creator")
}
