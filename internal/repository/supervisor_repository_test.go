package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-forms-api/internal/models"
)

func supervisorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "supervisor_id", "supervisor_name", "supervisor_email", "supervisor_password", "created_at", "updated_at",
	})
}

func TestSupervisorRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSupervisorRepository(db)

	mock.ExpectExec("INSERT INTO supervisors").
		WithArgs(anyArgs(7)...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	account := &models.SupervisorAccount{
		SupervisorID:       "AB12C",
		SupervisorName:     "Jane",
		SupervisorEmail:    "jane@acme.com",
		SupervisorPassword: "secret",
	}
	err := repo.Insert(context.Background(), account)
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupervisorRepositoryFindByCredentials(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSupervisorRepository(db)

	rows := supervisorRows().AddRow("1", "AB12C", "Jane", "jane@acme.com", "secret", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM supervisors WHERE supervisor_email").
		WithArgs("jane@acme.com", "secret").
		WillReturnRows(rows)

	accounts, err := repo.FindByCredentials(context.Background(), "jane@acme.com", "secret")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "AB12C", accounts[0].SupervisorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupervisorRepositoryFindByCredentialsNoMatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSupervisorRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM supervisors WHERE supervisor_email").
		WithArgs("jane@acme.com", "wrong").
		WillReturnRows(supervisorRows())

	accounts, err := repo.FindByCredentials(context.Background(), "jane@acme.com", "wrong")
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
