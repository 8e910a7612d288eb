package service

import (
	"context"
	"testing"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/models"
	"ridecarry/pkg/token"
	"ridecarry/storage/memory"
)

func newAuthEnv() AuthService {
	return NewAuthService(memory.New(), token.NewMaker("test-secret", 1), nopLog{})
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthEnv()

	user, tok, err := svc.Signup(ctx, SignupInput{
		Name:     "Asha",
		Email:    "  Asha@Example.COM ",
		Password: "secret1",
		Role:     "passenger",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if tok == "" {
		t.Error("signup returned empty token")
	}
	if user.Email != "asha@example.com" {
		t.Errorf("email = %q, want lowercased trimmed", user.Email)
	}
	if user.PasswordHash == "secret1" {
		t.Error("password stored in the clear")
	}

	loggedIn, tok, err := svc.Login(ctx, "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID || tok == "" {
		t.Error("login did not return the signed up user with a token")
	}

	resolved, err := svc.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("resolving token: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("resolved user = %s, want %s", resolved.ID, user.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthEnv()

	if _, _, err := svc.Signup(ctx, SignupInput{Name: "A", Email: "a@b.com", Password: "secret1", Role: "driver"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	for _, tc := range []struct{ email, password string }{
		{"a@b.com", "wrong"},
		{"nobody@b.com", "secret1"},
	} {
		_, _, err := svc.Login(ctx, tc.email, tc.password)
		if !apperr.IsKind(err, apperr.KindAuthentication) {
			t.Errorf("login(%q): got %v, want authentication error", tc.email, err)
		}
		if apperr.UserMessage(err) != "Invalid credentials" {
			t.Errorf("login(%q) message = %q", tc.email, apperr.UserMessage(err))
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthEnv()

	in := SignupInput{Name: "A", Email: "dup@b.com", Password: "secret1", Role: "passenger"}
	if _, _, err := svc.Signup(ctx, in); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, _, err := svc.Signup(ctx, in)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate signup: got %v, want conflict", err)
	}
	if apperr.UserMessage(err) != "Email already registered" {
		t.Errorf("message = %q", apperr.UserMessage(err))
	}
}

func TestSignupDriverGetsPendingDocuments(t *testing.T) {
	ctx := context.Background()
	svc := newAuthEnv()

	aadhaar := "/uploads/aadhaar.png"
	user, _, err := svc.Signup(ctx, SignupInput{
		Name: "D", Email: "d@b.com", Password: "secret1", Role: "driver",
		AadhaarPath: &aadhaar,
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Documents == nil {
		t.Fatal("driver signup must attach documents")
	}
	if user.Documents.Status != models.DocStatusPending {
		t.Errorf("doc status = %q, want pending", user.Documents.Status)
	}
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthEnv()

	cases := []struct {
		name string
		in   SignupInput
		want string
	}{
		{"missing fields", SignupInput{Email: "a@b.com"}, "Missing required fields"},
		{"bad email", SignupInput{Name: "A", Email: "nope", Password: "secret1", Role: "passenger"}, "Invalid email"},
		{"bad role", SignupInput{Name: "A", Email: "a@b.com", Password: "secret1", Role: "admin"}, "Invalid role"},
		{"short password", SignupInput{Name: "A", Email: "a@b.com", Password: "abc", Role: "passenger"}, "Password must be at least 6 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Signup(ctx, tc.in)
			if got := apperr.UserMessage(err); got != tc.want {
				t.Errorf("message = %q, want %q", got, tc.want)
			}
		})
	}
}
