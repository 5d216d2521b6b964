package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-blog-generator/cmd/api/auth"
	"ai-blog-generator/logger"
	"ai-blog-generator/models"
	"ai-blog-generator/repositories"
)

type AuthService struct {
	users      repositories.UserRepository
	sessions   repositories.SessionRepository
	jwtManager *auth.JWTManager
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users repositories.UserRepository, sessions repositories.SessionRepository, jwtManager *auth.JWTManager, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

type SignupInput struct {
	Username       string
	Email          string
	Password       string
	RepeatPassword string
}

// Signup 은 계정을 만들고 바로 로그인 세션을 발급한다.
// 비밀번호 불일치는 저장소를 호출하기 전에 걸러낸다.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (string, *models.User, error) {
	if in.Password != in.RepeatPassword {
		return "", nil, ErrPasswordMismatch
	}
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return "", nil, ErrMissingFields
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return "", nil, ErrAccountExists
		}
		return "", nil, err
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return "", nil, err
	}
	logger.InfoWithFields("account created", logger.Fields{"user_id": user.ID, "username": user.Username})
	return token, user, nil
}

// Login 은 존재하지 않는 사용자와 틀린 비밀번호를 같은 오류로 처리한다.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout 은 서버 측 세션을 지운다. 토큰이 이미 무효이면 할 일이 없다.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sessionID, _, err := s.jwtManager.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Authenticate 는 세션 토큰으로 현재 사용자를 찾는다.
// 토큰이 무효이거나 세션이 없거나 만료되었으면 ErrUnauthenticated 를 반환한다.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	sessionID, userID, err := s.jwtManager.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.UserID != userID || session.Expired(s.now()) {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.jwtManager.TTL()
}

func (s *AuthService) startSession(ctx context.Context, user *models.User) (string, error) {
	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.jwtManager.TTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := s.jwtManager.Sign(session.ID, user.ID)
	if err != nil {
		return "", fmt.Errorf("jwt sign: %w", err)
	}
	return token, nil
}
