package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/ctxutil"
)

const testJWTSecret = "unit-test-secret"

func testAuthService(t *testing.T) AuthService {
	t.Helper()
	return NewAuthService(nil, testLogger(t), nil, nil, nil, testJWTSecret, 15*time.Minute, 24*time.Hour)
}

func signTestToken(t *testing.T, sub string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(expiresIn).Unix(),
	}).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestRegisterValidation(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "not-an-email", "", "longenough"); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("bad email: want ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Register(ctx, "a@b.c", "", "short"); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("short password: want ErrInvalidArgument, got %v", err)
	}
}

func TestContextFromTokenRoundTrip(t *testing.T) {
	svc := testAuthService(t)
	userID := uuid.New()
	token := signTestToken(t, userID.String(), time.Minute)

	ctx, err := svc.ContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ContextFromToken: %v", err)
	}
	if got := ctxutil.UserID(ctx); got != userID {
		t.Fatalf("user id: want=%s got=%s", userID, got)
	}
}

func TestContextFromTokenRejectsBadTokens(t *testing.T) {
	svc := testAuthService(t)

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"expired", signTestToken(t, uuid.New().String(), -time.Minute)},
		{"non-uuid subject", signTestToken(t, "someone", time.Minute)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ContextFromToken(context.Background(), tc.token); !errors.Is(err, pkgerrors.ErrUnauthorized) {
				t.Fatalf("want ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestLogoutRequiresAuth(t *testing.T) {
	svc := testAuthService(t)

	if err := svc.Logout(context.Background()); !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}
