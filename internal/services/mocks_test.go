package services

import (
	"errors"

	"societyportal/internal/models"
	"societyportal/internal/repositories"
)

// func-field mocks, one per collaborator

type mockUserRepo struct {
	createFunc      func(user *models.User) error
	getByIDFunc     func(id int) (*models.User, error)
	getByNameFunc   func(username string) (*models.User, error)
	updateEmailFunc func(id int, email string) (*models.User, error)
	listFunc        func(limit, offset int) ([]*models.User, error)
}

var _ repositories.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepo) GetByID(id int) (*models.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(username)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) UpdateEmail(id int, email string) (*models.User, error) {
	if m.updateEmailFunc != nil {
		return m.updateEmailFunc(id, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) List(limit, offset int) ([]*models.User, error) {
	if m.listFunc != nil {
		return m.listFunc(limit, offset)
	}
	return nil, nil
}

func (m *mockUserRepo) GetCount() (int, error) { return 0, nil }

type mockMailer struct {
	sendFunc func(email, name, code string) error

	// last dispatch, captured even when sendFunc fails
	lastTo   string
	lastCode string
	sent     int
}

func (m *mockMailer) SendOTPEmail(email, name, code string) error {
	m.lastTo = email
	m.lastCode = code
	m.sent++
	if m.sendFunc != nil {
		return m.sendFunc(email, name, code)
	}
	return nil
}

type mockUserService struct {
	setVerifiedEmailFunc func(id int, email string) (*models.User, error)
	getByIDFunc          func(id int) (*models.User, error)
}

var _ UserService = (*mockUserService)(nil)

func (m *mockUserService) Register(name, username, password string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Authenticate(username, password string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetUserByID(id int) (*models.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetUserByUsername(username string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) SetVerifiedEmail(id int, email string) (*models.User, error) {
	if m.setVerifiedEmailFunc != nil {
		return m.setVerifiedEmailFunc(id, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) ListUsers(limit, offset int) ([]*models.User, error) { return nil, nil }

func (m *mockUserService) GetUserCount() (int, error) { return 0, nil }
