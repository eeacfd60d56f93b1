package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"societyportal/internal/models"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already taken")
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UpdateEmail(id int, email string) (*models.User, error)
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

// uniqueViolation maps a pq unique_violation (23505) onto the matching
// sentinel by looking at the constraint name.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	if strings.Contains(pqErr.Constraint, "email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, username, password_hash, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	var email sql.NullString
	if user.Email != nil {
		email = sql.NullString{String: *user.Email, Valid: true}
	}
	err := r.DB.QueryRow(q,
		user.Name,
		user.Username,
		user.PasswordHash,
		email,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return r.getOne(`WHERE id = $1`, id)
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	return r.getOne(`WHERE username = $1`, username)
}

func (r *userRepository) getOne(where string, arg any) (*models.User, error) {
	q := `
		SELECT id, name, username, password_hash, email, role, created_at, updated_at
		FROM users ` + where
	u := &models.User{}
	var email sql.NullString
	err := r.DB.QueryRow(q, arg).Scan(
		&u.ID, &u.Name, &u.Username, &u.PasswordHash, &email, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	if email.Valid {
		s := email.String
		u.Email = &s
	}
	return u, nil
}

func (r *userRepository) UpdateEmail(id int, email string) (*models.User, error) {
	const q = `
		UPDATE users
		SET email = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, username, password_hash, email, role, created_at, updated_at
	`
	u := &models.User{}
	var em sql.NullString
	err := r.DB.QueryRow(q, email, id).Scan(
		&u.ID, &u.Name, &u.Username, &u.PasswordHash, &em, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if dup := uniqueViolation(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("user update email: %w", err)
	}
	if em.Valid {
		s := em.String
		u.Email = &s
	}
	return u, nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `
		SELECT id, name, username, email, role, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		var email sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if email.Valid {
			s := email.String
			u.Email = &s
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}
