package auth

import (
	"context"
	"strings"
	"time"

	"catalog-service/core/apperr"
	"catalog-service/core/token"
	"catalog-service/feature/auth/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "Bearer"

// RegisterInput is the payload for member registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the payload for member login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service handles member authentication.
type Service struct {
	repo   *Repository
	tokens *token.Service
	logger *zap.Logger
}

// NewService creates a new auth service.
func NewService(repo *Repository, tokens *token.Service, logger *zap.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a member and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.AuthPayload, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	signed, _, err := s.tokens.Issue(member.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthPayload{
		Member:    member.ToResponse(),
		Token:     signed,
		TokenType: tokenTypeBearer,
	}, nil
}

// Login verifies credentials, records the login and returns a token. Unknown
// emails and wrong passwords produce the same error so the response does not
// reveal which part failed.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.AuthPayload, error) {
	member, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	signed, _, err := s.tokens.Issue(member.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RecordLogin(ctx, member.ID, time.Now()); err != nil {
		// The login itself succeeded; a failed log write should not lock the
		// member out.
		s.logger.Warn("failed to record login", zap.Uint("member_id", member.ID), zap.Error(err))
	}

	return &models.AuthPayload{
		Member:    member.ToResponse(),
		Token:     signed,
		TokenType: tokenTypeBearer,
	}, nil
}

// Me returns the authenticated member.
func (s *Service) Me(ctx context.Context, memberID uint) (*models.MemberResponse, error) {
	member, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.Unauthorized("member no longer exists")
	}
	resp := member.ToResponse()
	return &resp, nil
}

// Logout stamps the member's logout time. Tokens are stateless and remain
// technically valid until expiry.
func (s *Service) Logout(ctx context.Context, memberID uint) error {
	return s.repo.RecordLogout(ctx, memberID, time.Now())
}

// Refresh issues a new token for the member.
func (s *Service) Refresh(ctx context.Context, memberID uint) (*models.TokenPayload, error) {
	member, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.Unauthorized("member no longer exists")
	}

	signed, _, err := s.tokens.Issue(member.ID)
	if err != nil {
		return nil, err
	}
	return &models.TokenPayload{Token: signed, TokenType: tokenTypeBearer}, nil
}

func validateRegister(in RegisterInput) error {
	if in.Name == "" || len(in.Name) > 255 {
		return apperr.Validation("name is required and must be at most 255 characters")
	}
	if in.Email == "" || len(in.Email) > 255 || !strings.Contains(in.Email, "@") {
		return apperr.Validation("a valid email is required")
	}
	if len(in.Password) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	return nil
}
