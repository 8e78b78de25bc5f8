package services

import (
	"letter-routing-api/models"
)

// LetterAction names an operation a caller can request against the
// letter workflow.
type LetterAction string

const (
	ActionCreate           LetterAction = "create"
	ActionAdminReview      LetterAction = "admin_review"
	ActionMinisterDecision LetterAction = "minister_decision"
	ActionForward          LetterAction = "forward"
	ActionViewInbox        LetterAction = "view_inbox"
	ActionViewSent         LetterAction = "view_sent"
)

// actionRoles is the full role eligibility table. Inbox and sent views
// are open to every authenticated role; the visible set is scoped per
// role by the query layer instead.
var actionRoles = map[LetterAction][]models.Role{
	ActionCreate:           {models.RoleDepartment, models.RoleMinister},
	ActionAdminReview:      {models.RoleRecordOffice},
	ActionMinisterDecision: {models.RoleMinister},
	ActionForward:          {models.RoleRecordOffice},
	ActionViewInbox:        {models.RoleDepartment, models.RoleRecordOffice, models.RoleMinister},
	ActionViewSent:         {models.RoleDepartment, models.RoleRecordOffice, models.RoleMinister},
}

// Authorize reports whether the role may request the action. It is a
// pure predicate with no side effects: callers must evaluate it before
// touching any letter so that a denied caller learns nothing about
// letter state.
func Authorize(action LetterAction, role models.Role) bool {
	for _, allowed := range actionRoles[action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// AllowedRoles returns the roles eligible for an action, in declaration
// order. Used to wire route-level role gates.
func AllowedRoles(action LetterAction) []models.Role {
	return actionRoles[action]
}
