package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"opor-loyalty/internal/config"
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/pkg/jwt"
	"opor-loyalty/internal/pkg/password"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService issues member and staff access tokens
type AuthService struct {
	members        *MemberService
	staffHash      string
	jwtSecret      string
	accessTokenMin int
}

// NewAuthService creates a new auth service. The staff passphrase is hashed
// once here and only the hash is kept.
func NewAuthService(members *MemberService, cfg *config.Config) (*AuthService, error) {
	return newAuthService(members, cfg, password.DefaultCost)
}

func newAuthService(members *MemberService, cfg *config.Config, cost int) (*AuthService, error) {
	if cfg.Staff.Passphrase == "" {
		return nil, fmt.Errorf("staff passphrase is empty")
	}
	hash, err := password.HashWithCost(cfg.Staff.Passphrase, cost)
	if err != nil {
		return nil, fmt.Errorf("hashing staff passphrase: %w", err)
	}

	return &AuthService{
		members:        members,
		staffHash:      hash,
		jwtSecret:      cfg.JWT.Secret,
		accessTokenMin: cfg.JWT.AccessTokenMins,
	}, nil
}

// LoginInput represents customer login input
type LoginInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,max=20"`
}

// StaffLoginInput represents staff login input
type StaffLoginInput struct {
	Passphrase string `json:"passphrase" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Member      *domain.Member `json:"member,omitempty"`
	Role        domain.Role    `json:"role"`
	AccessToken string         `json:"access_token"`
}

// Login authenticates a customer by phone number
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	member, err := s.members.FindMemberByPhone(ctx, input.PhoneNumber)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateAccessToken(member.ID, member.PhoneNumber, string(domain.RoleMember), s.jwtSecret, s.accessTokenMin)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Member logged in: %s", member.ID)
	return &AuthResponse{Member: member, Role: domain.RoleMember, AccessToken: token}, nil
}

// StaffLogin authenticates staff by the shared passphrase
func (s *AuthService) StaffLogin(ctx context.Context, input *StaffLoginInput) (*AuthResponse, error) {
	if !password.Verify(input.Passphrase, s.staffHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken("", "", string(domain.RoleStaff), s.jwtSecret, s.accessTokenMin)
	if err != nil {
		return nil, err
	}

	log.Println("✅ Staff logged in")
	return &AuthResponse{Role: domain.RoleStaff, AccessToken: token}, nil
}
