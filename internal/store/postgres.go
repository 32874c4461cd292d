package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PratikDhanave/sponsorship-service/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

var (
	// ErrUserExists is returned when the email or username is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no user has the given id.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownField is returned when a field selection names a field the store does not have.
	ErrUnknownField = errors.New("unknown user field")
)

// userColumns maps public field names to columns. Only these are selectable.
var userColumns = map[string]string{
	"id":        "id",
	"username":  "username",
	"email":     "email",
	"firstName": "first_name",
	"lastName":  "last_name",
	"phone":     "phone",
	"address":   "address",
	"city":      "city",
	"country":   "country",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// NewUser is the input for CreateUser. PasswordHash must already be hashed.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

// PostgresStore is the identity store backed by Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema() error {
	_, err := p.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping is used by readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// CreateUser inserts a user with an empty profile.
func (p *PostgresStore) CreateUser(ctx context.Context, u NewUser) (models.User, error) {
	if u.Username == "" || u.Email == "" || u.PasswordHash == "" {
		return models.User{}, errors.New("username/email/password hash required")
	}

	out := models.User{Username: u.Username, Email: u.Email}
	err := p.pool.QueryRow(ctx, `
		INSERT INTO users(username, email, password_hash)
		VALUES ($1,$2,$3)
		RETURNING id
	`, u.Username, u.Email, u.PasswordHash).Scan(&out.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return models.User{}, ErrUserExists
	}
	if err != nil {
		return models.User{}, err
	}
	return out, nil
}

// UpdateProfile overwrites all six profile fields of a user.
func (p *PostgresStore) UpdateProfile(ctx context.Context, id int64, prof models.Profile) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE users
		SET first_name=$2, last_name=$3, phone=$4, address=$5, city=$6, country=$7, updated_at=now()
		WHERE id=$1
	`, id, prof.FirstName, prof.LastName, prof.Phone, prof.Address, prof.City, prof.Country)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindUser reads the selected fields of a user, keyed by their public names.
func (p *PostgresStore) FindUser(ctx context.Context, id int64, fields []string) (map[string]any, error) {
	query, err := selectUserQuery(fields)
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f] = row[f]
	}
	return out, nil
}

// selectUserQuery builds a SELECT aliasing each column to its public name.
func selectUserQuery(fields []string) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty selection", ErrUnknownField)
	}

	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := userColumns[f]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		cols = append(cols, fmt.Sprintf(`%s AS "%s"`, col, f))
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM users WHERE id=$1", nil
}
