package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/interviewsim-backend/internal/data/repos/testutil"
	"github.com/yungbote/interviewsim-backend/internal/data/repos/users"
	"github.com/yungbote/interviewsim-backend/internal/requestdata"
)

func TestAuthService_RegisterLoginToken(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewAuthService(db, log, users.NewUserRepo(db, log), "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Auth.Service@Example.com", "Auth Tester", "longenough")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "auth.service@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "longenough" {
		t.Fatalf("password stored in plaintext")
	}

	if _, err := svc.RegisterUser(ctx, "auth.service@example.com", "Dup", "longenough"); err == nil {
		t.Fatalf("duplicate email must fail")
	}
	if _, err := svc.RegisterUser(ctx, "short@example.com", "Short", "tiny"); err == nil {
		t.Fatalf("short password must fail")
	}

	token, err := svc.LoginUser(ctx, "auth.service@example.com", "longenough")
	if err != nil || token == "" {
		t.Fatalf("LoginUser: err=%v token=%q", err, token)
	}
	if _, err := svc.LoginUser(ctx, "auth.service@example.com", "wrongpass"); err == nil {
		t.Fatalf("wrong password must fail")
	}

	authed, err := svc.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("token did not carry the user id: %+v", rd)
	}

	if _, err := svc.SetContextFromToken(ctx, token+"garbage"); err == nil {
		t.Fatalf("tampered token must fail")
	}
}
