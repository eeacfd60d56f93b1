package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"societyportal/internal/authz"
	"societyportal/internal/models"
	"societyportal/internal/repositories"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type UserService interface {
	Register(name, username, password string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	SetVerifiedEmail(id int, email string) (*models.User, error)
	ListUsers(limit, offset int) ([]*models.User, error)
	GetUserCount() (int, error)
}

type userService struct {
	repo        repositories.UserRepository
	authService AuthService
	notifier    *TelegramService // optional, nil disables notifications
}

func NewUserService(repo repositories.UserRepository, authService AuthService, notifier *TelegramService) UserService {
	return &userService{
		repo:        repo,
		authService: authService,
		notifier:    notifier,
	}
}

// Register hashes the password and persists a new user with the default role.
func (s *userService) Register(name, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Username:     username,
		PasswordHash: hash,
		Role:         authz.RoleStudent,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	if s.notifier != nil {
		// warn but do not fail registration
		if err := s.notifier.NotifyNewMember(user.Name, user.Username); err != nil {
			log.Printf("[user][register] warning: telegram notify failed for %q: %v", user.Username, err)
		}
	}
	return user, nil
}

func (s *userService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.authService.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetVerifiedEmail commits a verified address to the user record.
func (s *userService) SetVerifiedEmail(id int, email string) (*models.User, error) {
	user, err := s.repo.UpdateEmail(id, email)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) GetUserCount() (int, error) {
	return s.repo.GetCount()
}
