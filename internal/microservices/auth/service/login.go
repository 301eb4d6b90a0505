package service

import (
	"context"
	"errors"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/auth/repository"
)

var (
	errBadCredentials = &domain.Error{Kind: domain.KindUnauthorized, Msg: "invalid email or password"}
	errClosed         = &domain.Error{Kind: domain.KindRestaurantClosed, Msg: "the restaurant is closed, no shift is open"}
)

// ShiftGate reports whether the restaurant is operating.
type ShiftGate interface {
	IsOpen(ctx context.Context) (bool, error)
}

type LoginResult struct {
	Token string      `json:"token"`
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

type LoginServiceInterface interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
}

type LoginService struct {
	db     repository.StaffRepositoryInterface
	gate   ShiftGate
	tokens *auth.Tokens
	lg     *logger.Logger
}

func NewLoginService(db repository.StaffRepositoryInterface, gate ShiftGate, tokens *auth.Tokens, lg *logger.Logger) LoginServiceInterface {
	return &LoginService{db: db, gate: gate, tokens: tokens, lg: lg}
}

func (s *LoginService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, domain.Invalid("email and password are required")
	}
	staff, err := s.db.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return LoginResult{}, errBadCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := auth.VerifyPassword(staff.PasswordHash, password); err != nil {
		s.lg.Warn("login_rejected", err, map[string]any{"staff_id": staff.ID})
		return LoginResult{}, errBadCredentials
	}

	// без открытой смены входит только админ
	if staff.Role != domain.RoleAdmin {
		open, err := s.gate.IsOpen(ctx)
		if err != nil {
			return LoginResult{}, err
		}
		if !open {
			return LoginResult{}, errClosed
		}
	}

	token, err := s.tokens.Generate(staff)
	if err != nil {
		return LoginResult{}, err
	}
	s.lg.Info("login", map[string]any{"staff_id": staff.ID, "role": staff.Role})
	return LoginResult{Token: token, ID: staff.ID, Name: staff.Name, Role: staff.Role}, nil
}
