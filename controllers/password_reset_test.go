package controllers

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"letter-routing-api/config"

	"github.com/gin-gonic/gin"
)

const genericResetMessage = "If the email exists, a reset link has been sent."

func forgotPasswordRouter() *gin.Engine {
	router := gin.New()
	router.POST("/password-reset/request", ForgotPassword)
	return router
}

func postForgotPassword(router *gin.Engine, email string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"email":"` + email + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/password-reset/request", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func responseMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload.Message
}

// The response must be identical whether the address exists or not, and
// whether the reset email could be sent or not. Anything else tells a
// caller which addresses have accounts.
func TestForgotPasswordMailFailureKeepsGenericResponse(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE email = \\?"),
			args:    []driver.Value{"officer@finance.gov"},
			columns: []string{"user_id", "name", "email", "role", "status"},
			rows: [][]driver.Value{
				{int64(7), "Finance Officer", "officer@finance.gov", "department", "active"},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `password_reset_tokens` SET .*`used`"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `password_reset_tokens`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	prevDB := config.DB
	config.DB = db
	defer func() { config.DB = prevDB }()

	prevSend := sendMailFunc
	sendMailFunc = func([]string, string, string) error {
		return errors.New("smtp unreachable")
	}
	defer func() { sendMailFunc = prevSend }()

	rec := postForgotPassword(forgotPasswordRouter(), "officer@finance.gov")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on mail failure, got %d", rec.Code)
	}
	if msg := responseMessage(t, rec); msg != genericResetMessage {
		t.Fatalf("unexpected message %q", msg)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestForgotPasswordUnknownAddressKeepsGenericResponse(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE email = \\?"),
			args:    []driver.Value{"nobody@finance.gov"},
			columns: []string{"user_id", "name", "email", "role", "status"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	prevDB := config.DB
	config.DB = db
	defer func() { config.DB = prevDB }()

	mailSent := false
	prevSend := sendMailFunc
	sendMailFunc = func([]string, string, string) error {
		mailSent = true
		return nil
	}
	defer func() { sendMailFunc = prevSend }()

	rec := postForgotPassword(forgotPasswordRouter(), "nobody@finance.gov")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown address, got %d", rec.Code)
	}
	if msg := responseMessage(t, rec); msg != genericResetMessage {
		t.Fatalf("unexpected message %q", msg)
	}
	if mailSent {
		t.Fatal("no mail may be sent for an unknown address")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
