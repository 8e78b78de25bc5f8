package services

import (
	"testing"

	"letter-routing-api/models"
)

var allStatuses = []models.LetterStatus{
	models.StatusPendingReview,
	models.StatusNeedsMinisterApproval,
	models.StatusMinisterApproved,
	models.StatusMinisterRejected,
	models.StatusForwarded,
	models.StatusDelivered,
}

func TestCanApplyTransitionTable(t *testing.T) {
	cases := []struct {
		from   models.LetterStatus
		action LetterAction
		want   bool
	}{
		{models.StatusPendingReview, ActionAdminReview, true},
		{models.StatusPendingReview, ActionMinisterDecision, false},
		{models.StatusPendingReview, ActionForward, false}, // no direct pending_review -> delivered

		{models.StatusNeedsMinisterApproval, ActionMinisterDecision, true},
		{models.StatusNeedsMinisterApproval, ActionAdminReview, false},
		{models.StatusNeedsMinisterApproval, ActionForward, false},

		{models.StatusMinisterApproved, ActionForward, true},
		{models.StatusForwarded, ActionForward, true},

		{models.StatusMinisterRejected, ActionForward, false}, // rejected letters are not deliverable
		{models.StatusDelivered, ActionForward, false},        // delivered is terminal
		{models.StatusDelivered, ActionAdminReview, false},
		{models.StatusDelivered, ActionMinisterDecision, false},
	}

	for _, tc := range cases {
		if got := CanApply(tc.from, tc.action); got != tc.want {
			t.Errorf("CanApply(%s, %s) = %v, want %v", tc.from, tc.action, got, tc.want)
		}
	}
}

// Every status must be reachable by some finite walk from pending_review
// through the transition table, and nothing outside the declared set may
// appear as a transition target.
func TestAllStatusesReachableFromPendingReview(t *testing.T) {
	targets := map[LetterAction][]models.LetterStatus{
		ActionAdminReview:      {models.StatusNeedsMinisterApproval, models.StatusForwarded},
		ActionMinisterDecision: {models.StatusMinisterApproved, models.StatusMinisterRejected},
		ActionForward:          {models.StatusDelivered},
	}

	reached := map[models.LetterStatus]bool{models.StatusPendingReview: true}
	for changed := true; changed; {
		changed = false
		for action, sources := range transitionSources {
			for _, src := range sources {
				if !reached[src] {
					continue
				}
				for _, dst := range targets[action] {
					if !reached[dst] {
						reached[dst] = true
						changed = true
					}
				}
			}
		}
	}

	for _, status := range allStatuses {
		if !reached[status] {
			t.Errorf("status %s is unreachable from pending_review", status)
		}
	}
	if len(reached) != len(allStatuses) {
		t.Errorf("reached %d statuses, want %d", len(reached), len(allStatuses))
	}
}

func TestTerminalStatuses(t *testing.T) {
	wantTerminal := map[models.LetterStatus]bool{
		models.StatusPendingReview:         false,
		models.StatusNeedsMinisterApproval: false,
		models.StatusMinisterApproved:      false,
		models.StatusForwarded:             false,
		models.StatusMinisterRejected:      true,
		models.StatusDelivered:             true,
	}

	for status, want := range wantTerminal {
		letter := models.Letter{Status: status}
		if got := letter.Terminal(); got != want {
			t.Errorf("Terminal(%s) = %v, want %v", status, got, want)
		}

		// Terminal must agree with the transition table: a status is
		// terminal exactly when no action applies from it.
		anyAction := CanApply(status, ActionAdminReview) ||
			CanApply(status, ActionMinisterDecision) ||
			CanApply(status, ActionForward)
		if anyAction == want {
			t.Errorf("transition table admits actions from %s but Terminal() = %v", status, want)
		}
	}
}
