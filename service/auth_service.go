package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/pkg/token"
	"ridecarry/storage"
)

type SignupInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	Phone       *string
	AadhaarPath *string
	LicensePath *string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Resolve(ctx context.Context, tokenStr string) (*models.User, error)
}

type authService struct {
	stg    storage.IStorage
	tokens *token.Maker
	log    logger.ILogger
}

func NewAuthService(stg storage.IStorage, tokens *token.Maker, log logger.ILogger) AuthService {
	return &authService{stg: stg, tokens: tokens, log: log}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := models.Role(strings.TrimSpace(in.Role))

	if name == "" || email == "" || in.Password == "" {
		return nil, "", apperr.Validation("Missing required fields")
	}
	if !strings.Contains(email, "@") {
		return nil, "", apperr.Validation("Invalid email")
	}
	if !role.Valid() {
		return nil, "", apperr.Validation("Invalid role")
	}
	if len(in.Password) < 6 {
		return nil, "", apperr.Validation("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Wrap(err, "hashing password")
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        in.Phone,
	}
	if role == models.RoleDriver {
		user.Documents = &models.DriverDocuments{
			AadhaarPath: in.AadhaarPath,
			LicensePath: in.LicensePath,
			Status:      models.DocStatusPending,
		}
	}

	user, err = s.stg.User().Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, "", apperr.Conflict("Email already registered")
		}
		return nil, "", apperr.Wrap(err, "creating user")
	}

	tok, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", apperr.Wrap(err, "signing token")
	}
	s.log.Info("user signed up", logger.String("user_id", user.ID), logger.String("role", string(user.Role)))
	return user, tok, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apperr.Validation("Missing required fields")
	}

	user, err := s.stg.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", apperr.Authentication("Invalid credentials")
		}
		return nil, "", apperr.Wrap(err, "loading user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperr.Authentication("Invalid credentials")
	}

	tok, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", apperr.Wrap(err, "signing token")
	}
	return user, tok, nil
}

// Resolve maps a bearer token to its user. Used by the auth middleware.
func (s *authService) Resolve(ctx context.Context, tokenStr string) (*models.User, error) {
	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, apperr.Authentication("Invalid or expired token")
	}
	user, err := s.stg.User().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.Authentication("Invalid token user")
		}
		return nil, apperr.Wrap(err, "loading user")
	}
	return user, nil
}
