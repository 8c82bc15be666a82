package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/internship-forms-api/internal/models"
)

const supervisorColumns = `id, supervisor_id, supervisor_name, supervisor_email, supervisor_password, created_at, updated_at`

// SupervisorRepository manages persistence for supervisor accounts.
type SupervisorRepository struct {
	db *sqlx.DB
}

// NewSupervisorRepository constructs a SupervisorRepository.
func NewSupervisorRepository(db *sqlx.DB) *SupervisorRepository {
	return &SupervisorRepository{db: db}
}

// Insert persists a new supervisor account.
func (r *SupervisorRepository) Insert(ctx context.Context, account *models.SupervisorAccount) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	const query = `INSERT INTO supervisors (id, supervisor_id, supervisor_name, supervisor_email, supervisor_password, created_at, updated_at)
        VALUES (:id, :supervisor_id, :supervisor_name, :supervisor_email, :supervisor_password, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("insert supervisor: %w", err)
	}
	return nil
}

// FindAll returns every supervisor account.
func (r *SupervisorRepository) FindAll(ctx context.Context) ([]models.SupervisorAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM supervisors ORDER BY created_at`, supervisorColumns)
	var accounts []models.SupervisorAccount
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("find all supervisors: %w", err)
	}
	return accounts, nil
}

// FindByCredentials returns accounts matching the email and password pair
// exactly. Plaintext equality is the lookup the login endpoint is built on.
func (r *SupervisorRepository) FindByCredentials(ctx context.Context, email, password string) ([]models.SupervisorAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM supervisors WHERE supervisor_email = $1 AND supervisor_password = $2`, supervisorColumns)
	var accounts []models.SupervisorAccount
	if err := r.db.SelectContext(ctx, &accounts, query, email, password); err != nil {
		return nil, fmt.Errorf("find supervisor by credentials: %w", err)
	}
	return accounts, nil
}
