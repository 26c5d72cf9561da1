package services

import (
	"context"
	"errors"
	"testing"

	"opor-loyalty/internal/config"
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, e *testEnv) *AuthService {
	t.Helper()
	cfg := &config.Config{
		JWT:   config.JWTConfig{Secret: "test-secret", AccessTokenMins: 5},
		Staff: config.StaffConfig{Passphrase: "opor45796"},
	}
	auth, err := newAuthService(e.members, cfg, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("newAuthService() error: %v", err)
	}
	return auth
}

func TestMemberLogin(t *testing.T) {
	e := newTestEnv(t)
	auth := newTestAuth(t, e)

	resp, err := auth.Login(context.Background(), &LoginInput{PhoneNumber: "0998887777"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Member == nil || resp.Member.ID != "m2" || resp.Role != domain.RoleMember {
		t.Errorf("unexpected response %+v", resp)
	}

	claims, err := jwt.ValidateAccessToken(resp.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.MemberID != "m2" || claims.Role != string(domain.RoleMember) {
		t.Errorf("unexpected claims %+v", claims)
	}

	_, err = auth.Login(context.Background(), &LoginInput{PhoneNumber: "0000"})
	wantErr(t, err, domain.ErrMemberNotFound)
}

func TestStaffLogin(t *testing.T) {
	e := newTestEnv(t)
	auth := newTestAuth(t, e)

	resp, err := auth.StaffLogin(context.Background(), &StaffLoginInput{Passphrase: "opor45796"})
	if err != nil {
		t.Fatalf("StaffLogin() error: %v", err)
	}
	claims, err := jwt.ValidateAccessToken(resp.AccessToken, "test-secret")
	if err != nil || claims.Role != string(domain.RoleStaff) || claims.MemberID != "" {
		t.Errorf("unexpected staff claims %+v (%v)", claims, err)
	}

	_, err = auth.StaffLogin(context.Background(), &StaffLoginInput{Passphrase: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestNewAuthServiceRequiresPassphrase(t *testing.T) {
	e := newTestEnv(t)
	if _, err := newAuthService(e.members, &config.Config{}, bcrypt.MinCost); err == nil {
		t.Error("expected error for empty passphrase")
	}
}
