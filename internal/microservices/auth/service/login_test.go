package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
)

type mockStaffRepo map[string]domain.Staff

func (m mockStaffRepo) FindByEmail(ctx context.Context, email string) (domain.Staff, error) {
	s, ok := m[email]
	if !ok {
		return domain.Staff{}, domain.NotFound("staff %s not found", email)
	}
	return s, nil
}

type gate bool

func (g gate) IsOpen(context.Context) (bool, error) { return bool(g), nil }

func newTestService(t *testing.T, open bool) (*auth.Tokens, LoginServiceInterface) {
	t.Helper()
	hash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatal(err)
	}
	repo := mockStaffRepo{
		"admin@pos": {ID: 1, Name: "Admin", Email: "admin@pos", Role: domain.RoleAdmin, PasswordHash: hash},
		"ana@pos":   {ID: 2, Name: "Ana", Email: "ana@pos", Role: domain.RoleWaiter, PasswordHash: hash},
	}
	tokens := auth.NewTokens("test-secret", time.Hour)
	return tokens, NewLoginService(repo, gate(open), tokens, logger.NewWithWriter("auth-test", &bytes.Buffer{}))
}

func TestLogin_IssuesToken(t *testing.T) {
	tokens, svc := newTestService(t, true)
	res, err := svc.Login(context.Background(), "ana@pos", "secret")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := tokens.Validate(res.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.ID != 2 || claims.Role != domain.RoleWaiter || res.Name != "Ana" {
		t.Errorf("unexpected login result %+v / %+v", res, claims)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	_, svc := newTestService(t, true)
	for _, tc := range []struct{ email, password string }{
		{"ana@pos", "wrong"},
		{"nobody@pos", "secret"},
	} {
		if _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("%s: expected unauthorized, got %v", tc.email, err)
		}
	}
}

func TestLogin_ShiftGate(t *testing.T) {
	_, svc := newTestService(t, false)
	if _, err := svc.Login(context.Background(), "ana@pos", "secret"); !errors.Is(err, domain.ErrRestaurantClosed) {
		t.Errorf("waiter must not log in without a shift, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin@pos", "secret"); err != nil {
		t.Errorf("admin logs in to open the shift: %v", err)
	}
}
