package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnprocessable, http.StatusUnprocessableEntity},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			err := E(tc.code, "Test.Op", "boom", nil)
			if got := HTTPStatus(err); got != tc.want {
				t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.code, got, tc.want)
			}
		})
	}
}

func TestHTTPStatus_WrappedAppError(t *testing.T) {
	inner := E(CodeNotFound, "Repo.Find", "user not found", ErrNotFound)
	wrapped := fmt.Errorf("handling request: %w", inner)
	if got := HTTPStatus(wrapped); got != http.StatusNotFound {
		t.Fatalf("HTTPStatus(wrapped) = %d, want %d", got, http.StatusNotFound)
	}
}

func TestHTTPStatus_PlainError(t *testing.T) {
	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus(plain) = %d, want %d", got, http.StatusInternalServerError)
	}
	if got := HTTPStatus(fmt.Errorf("repo: %w", ErrNotFound)); got != http.StatusNotFound {
		t.Fatalf("HTTPStatus(ErrNotFound) = %d, want %d", got, http.StatusNotFound)
	}
}

func TestIsCode(t *testing.T) {
	err := E(CodeConflict, "UserService.SignUp", "email already registered", nil)
	if !IsCode(err, CodeConflict) {
		t.Fatal("expected IsCode to match CodeConflict")
	}
	if IsCode(err, CodeNotFound) {
		t.Fatal("did not expect IsCode to match CodeNotFound")
	}
	if IsCode(errors.New("boom"), CodeInternal) {
		t.Fatal("plain errors carry no code")
	}
}

func TestAppError_Error(t *testing.T) {
	err := E(CodeInternal, "ChatService.Invoke", "failed to persist turns", errors.New("db down"))
	want := "ChatService.Invoke: failed to persist turns: db down"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if got := E(CodeInternal, "", "just a message", nil).Error(); got != "just a message" {
		t.Fatalf("Error() = %q, want %q", got, "just a message")
	}
}
