package service

import (
	"errors"
	"fmt"
	"strings"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/apperr"
	"social-system/pkg/jwt"
	"social-system/pkg/password"
	"social-system/pkg/redis"

	"gorm.io/gorm"
)

// UserService handles registration, login, and account-level changes.
type UserService struct {
	repo       *repository.UserRepository
	jwtService *jwt.JWTService
}

func NewUserService(repo *repository.UserRepository, jwtService *jwt.JWTService) *UserService {
	return &UserService{repo: repo, jwtService: jwtService}
}

func (s *UserService) issueToken(u *model.User) (string, error) {
	return s.jwtService.GenerateToken(
		fmt.Sprintf("%d", u.ID),
		map[string]interface{}{"username": u.Username, "role": u.Role},
	)
}

// Register creates an account with the default user role and issues a token.
func (s *UserService) Register(username, email, plainPassword string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || plainPassword == "" {
		return nil, "", apperr.InvalidArgument("username, email and password are required")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", apperr.Internal("failed to hash password", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Status:       "offline",
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Conflict("username or email already taken")
		}
		return nil, "", apperr.Internal("failed to create user", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", apperr.Internal("failed to issue token", err)
	}
	return user, token, nil
}

// Login verifies credentials against username or email and issues a token.
func (s *UserService) Login(identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", apperr.InvalidArgument("identifier and password are required")
	}

	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Unauthorized("invalid credentials")
		}
		return nil, "", apperr.Internal("failed to load user", err)
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", apperr.Internal("failed to issue token", err)
	}
	return u, token, nil
}

// ChangePassword swaps the stored hash after verifying the old password.
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if newPassword == "" {
		return apperr.InvalidArgument("new password is required")
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("failed to load user", err)
	}
	if !password.Verify(oldPassword, u.PasswordHash) {
		return apperr.Unauthorized("old password is incorrect")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	if err := s.repo.UpdatePassword(userID, hash); err != nil {
		return apperr.Internal("failed to update password", err)
	}
	return nil
}

// GetMe loads the authenticated user with profile.
func (s *UserService) GetMe(userID uint) (*model.User, error) {
	u, err := s.repo.GetByIDWithProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return u, nil
}

// Logout marks the user offline and drops their presence record.
func (s *UserService) Logout(userID uint) error {
	if err := s.repo.UpdateStatus(userID, "offline"); err != nil {
		return apperr.Internal("failed to update status", err)
	}
	_ = redis.RemoveUserPresence(userID)
	return nil
}
