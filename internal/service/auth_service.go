package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/domain"
)

// Hasher 口令摘要能力（默认 bcrypt）
type Hasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) bool
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AuthService struct {
	users  domain.UserRepository
	hasher Hasher
	log    *zap.Logger
}

func NewAuthService(users domain.UserRepository, hasher Hasher, l *zap.Logger) *AuthService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthService{users: users, hasher: hasher, log: l}
}

// Register 邮箱已存在时返回 ErrDuplicateEmail，不写库
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if err := domain.Require(
		[2]string{"name", name},
		[2]string{"email", email},
		[2]string{"password", in.Password},
	); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{Email: email, PasswordDigest: digest, Name: name}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.String("uid", u.ID))
	return u, nil
}

// Login 未知邮箱 ErrUserNotFound，口令不符 ErrWrongPassword（都包着 ErrAuthentication）
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if err := domain.Require([2]string{"email", email}, [2]string{"password", password}); err != nil {
		return nil, err
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !s.hasher.Verify(u.PasswordDigest, password) {
		return nil, domain.ErrWrongPassword
	}
	return u, nil
}

// Identify 按会话里的 uid 取回用户；用户已不存在时返回 nil, nil
func (s *AuthService) Identify(ctx context.Context, uid string) (*domain.User, error) {
	if uid == "" {
		return nil, nil
	}
	return s.users.FindByID(ctx, uid)
}
