package app_test

import (
	"context"
	"errors"
	"testing"

	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/internal/storage/memory"
)

func TestRegister_NormalisesAndRejectsDuplicates(t *testing.T) {
	svc := app.NewAuthService(memory.New(), fakeTokens{}, nil)
	ctx := context.Background()

	u, err := svc.Register(ctx, app.RegisterInput{Username: " Neo ", Email: "Neo@Example.com", Password: "matrix"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Username != "neo" || u.Email != "neo@example.com" || u.Role != domain.RoleUser {
		t.Fatalf("user = %+v", u)
	}
	if u.PasswordHash == "" || u.PasswordHash == "matrix" {
		t.Fatalf("password not hashed")
	}

	for _, in := range []app.RegisterInput{
		{Username: "neo", Email: "other@example.com", Password: "matrix"},
		{Username: "other", Email: "NEO@example.com", Password: "matrix"},
	} {
		_, err := svc.Register(ctx, in)
		var ve *app.ValidationError
		if !errors.As(err, &ve) || ve.Errors[0] != "This user already exists." {
			t.Fatalf("%+v: %v", in, err)
		}
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := app.NewAuthService(memory.New(), fakeTokens{}, nil)
	_, err := svc.Register(context.Background(), app.RegisterInput{Email: "not-an-email", Password: "abc"})
	var ve *app.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	want := []string{"Please fill username field.", "Invalid email address.", "Password must be at least 6 characters."}
	if len(ve.Errors) != len(want) {
		t.Fatalf("errors = %q", ve.Errors)
	}
	for i := range want {
		if ve.Errors[i] != want[i] {
			t.Fatalf("errors[%d] = %q, want %q", i, ve.Errors[i], want[i])
		}
	}
}

func TestLoginAuthenticateLogout(t *testing.T) {
	rev := &fakeRevoker{}
	svc := app.NewAuthService(memory.New(), fakeTokens{}, rev)
	ctx := context.Background()

	u, err := svc.Register(ctx, app.RegisterInput{Username: "neo", Email: "neo@example.com", Password: "matrix"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "neo", "wrong!"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost", "matrix"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}

	for _, login := range []string{"neo", "NEO@example.com"} {
		tok, got, err := svc.Login(ctx, login, "matrix")
		if err != nil {
			t.Fatalf("login %s: %v", login, err)
		}
		if got.ID != u.ID || tok == "" {
			t.Fatalf("login %s: %+v %q", login, got, tok)
		}
	}

	tok, _, _ := svc.Login(ctx, "neo", "matrix")
	me, err := svc.Authenticate(ctx, tok)
	if err != nil || me.ID != u.ID {
		t.Fatalf("authenticate: %+v %v", me, err)
	}
	if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, app.ErrUnauthorized) {
		t.Fatalf("empty token: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "tok-ghost"); !errors.Is(err, app.ErrUnauthorized) {
		t.Fatalf("token of unknown user: %v", err)
	}

	if err := svc.Logout(ctx, tok); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, tok); !errors.Is(err, app.ErrUnauthorized) {
		t.Fatalf("revoked token still accepted: %v", err)
	}
}

func TestLogout_WithoutRevokerIsNoop(t *testing.T) {
	svc := app.NewAuthService(memory.New(), fakeTokens{}, nil)
	if err := svc.Logout(context.Background(), "anything"); err != nil {
		t.Fatalf("logout: %v", err)
	}
}
