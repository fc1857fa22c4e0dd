package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Users)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Password,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, password, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var user models.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, password, created_at, updated_at
		FROM %s
		WHERE email = $1
	`, r.tables.Users)

	var user models.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// List retrieves the id+name projection of every user
func (r *PostgresUserRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	query := fmt.Sprintf(`
		SELECT id, name
		FROM %s
		ORDER BY id
	`, r.tables.Users)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var user models.UserSummary
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// GetInfo retrieves the public profile view with the owned-project count
func (r *PostgresUserRepository) GetInfo(ctx context.Context, id int64) (*models.UserInfo, error) {
	query := fmt.Sprintf(`
		SELECT u.name, md5(u.email), u.created_at, COUNT(p.id)
		FROM %s u
		LEFT JOIN %s p ON u.id = p.user_id
		WHERE u.id = $1
		GROUP BY u.id
	`, r.tables.Users, r.tables.Projects)

	var info models.UserInfo
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&info.Name,
		&info.EmailHash,
		&info.CreatedAt,
		&info.ProjectsCount,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user info: %w", err)
	}

	return &info, nil
}

// Exists reports whether a user row with the given id exists
func (r *PostgresUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Users)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return exists, nil
}

// EmailInUse reports whether another user already claims the email
func (r *PostgresUserRepository) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1 AND id <> $2)`, r.tables.Users)

	var inUse bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, email, excludeID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("check email in use: %w", err)
	}

	return inUse, nil
}

// Update rewrites name, email, password and the updated_at timestamp
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, email = $2, password = $3, updated_at = now()
		WHERE id = $4
	`, r.tables.Users)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		user.Name,
		user.Email,
		user.Password,
		user.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrConflict)
		}
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the user row. The cascade orchestrator must have removed
// every dependent row first within the same transaction.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Users)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
