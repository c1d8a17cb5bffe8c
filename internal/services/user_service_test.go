package services

import (
	"context"
	"testing"

	"github.com/proxytool/proxytool/internal/utils"
)

func TestUserSignUp(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	u, err := svc.SignUp(context.Background(), " Jane@Example.COM ")
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "jane@example.com" {
		t.Errorf("email not case-folded: %q", u.Email)
	}
	if u.ID == "" {
		t.Errorf("missing generated id")
	}
}

func TestUserSignUp_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo(testUser())
	svc := NewUserService(users)

	_, err := svc.SignUp(context.Background(), "jane@example.com")
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestUserSignUp_InvalidEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, err := svc.SignUp(context.Background(), email); !utils.IsCode(err, utils.CodeInvalidArgument) {
			t.Errorf("SignUp(%q): expected INVALID_ARGUMENT, got %v", email, err)
		}
	}
}

func TestUserGet_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	_, err := svc.Get(context.Background(), "nobody@example.com")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUserDelete(t *testing.T) {
	users := newFakeUserRepo(testUser())
	svc := NewUserService(users)

	id, err := svc.Delete(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if id != testUser().ID {
		t.Errorf("deleted id = %q", id)
	}
	if users.deleteCalls != 1 {
		t.Errorf("delete calls = %d", users.deleteCalls)
	}

	if _, err := svc.Get(context.Background(), "jane@example.com"); !utils.IsCode(err, utils.CodeNotFound) {
		t.Errorf("user still present after delete")
	}
}

func TestUserDelete_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	if _, err := svc.Delete(context.Background(), "nobody@example.com"); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
