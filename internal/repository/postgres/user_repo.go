package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gertonargent/gta-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, username, phone, hashed_password, auth_provider, google_id, avatar_url, created_at, updated_at`

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.Phone, &u.HashedPassword,
		&u.AuthProvider, &u.GoogleID, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scanUser(row)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return r.scanUser(row)
}

// GetByGoogleID retrieves a user by their Google account ID
func (r *UserRepository) GetByGoogleID(googleID string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
	return r.scanUser(row)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return r.scanUser(row)
}

// Create inserts a new user
func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO users (id, email, username, phone, hashed_password, auth_provider, google_id, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		user.ID, user.Email, user.Username, user.Phone, user.HashedPassword,
		user.AuthProvider, user.GoogleID, user.AvatarURL,
	)
	created, err := r.scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return created, nil
}

// Update updates a user's mutable profile fields
func (r *UserRepository) Update(user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE users
		 SET username = $2, phone = $3, hashed_password = $4, google_id = $5,
		     auth_provider = $6, avatar_url = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		user.ID, user.Username, user.Phone, user.HashedPassword,
		user.GoogleID, user.AuthProvider, user.AvatarURL,
	)
	return r.scanUser(row)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
