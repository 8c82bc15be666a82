package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-forms-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func formRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "student_name", "student_address", "student_home_phone", "student_mobile_phone",
		"student_emails", "year", "semester", "cgpa", "assigned_supervisor", "supervisor_email",
		"employer_name", "employer_address", "supervisor_name", "supervisor_phone", "supervisor_title",
		"internship_start", "internship_end", "work_hours_per_week", "created_at", "updated_at",
	})
}

func TestFormRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFormRepository(db)

	mock.ExpectExec("INSERT INTO form_i1_records").
		WithArgs(anyArgs(22)...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.FormRecord{
		StudentID:          "S1",
		StudentName:        "A",
		StudentEmails:      []string{"a@x.com"},
		AssignedSupervisor: "sup@x.com",
		SupervisorEmail:    "sup@x.com",
	}
	err := repo.Insert(context.Background(), record)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormRepositoryFindByStudentID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFormRepository(db)

	rows := formRows().AddRow(
		"rec-1", "S1", "A", "X", "1", "2",
		"{a@x.com}", "3", "1", "3.5", "sup@x.com", "sup@x.com",
		"", "", "", "", "",
		"", "", "", time.Now(), time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM form_i1_records WHERE student_id").
		WithArgs("S1").
		WillReturnRows(rows)

	records, err := repo.FindByStudentID(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "S1", records[0].StudentID)
	assert.Equal(t, []string{"a@x.com"}, []string(records[0].StudentEmails))
	assert.Equal(t, "sup@x.com", records[0].SupervisorEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormRepositoryFindBySupervisorEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFormRepository(db)

	rows := formRows().AddRow(
		"rec-1", "S1", "A", "X", "1", "2",
		"{a@x.com}", "3", "1", "3.5", "sup@x.com", "sup@x.com",
		"", "", "", "", "",
		"", "", "", time.Now(), time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM form_i1_records WHERE supervisor_email").
		WithArgs("sup@x.com").
		WillReturnRows(rows)

	records, err := repo.FindBySupervisorEmail(context.Background(), "sup@x.com")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormRepositoryApplySupervisorPatchFull(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFormRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE form_i1_records SET employer_name = $1, employer_address = $2, supervisor_name = $3, "+
			"supervisor_phone = $4, supervisor_title = $5, supervisor_email = $6, internship_start = $7, "+
			"internship_end = $8, work_hours_per_week = $9, updated_at = $10 WHERE student_id = $11")).
		WithArgs("ACME", "HQ", "Jane", "555", "Manager", "jane@acme.com", "2024-01-01", "2024-06-01", "40",
			sqlmock.AnyArg(), "S1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	patch := models.SupervisorPatch{
		EmployerName:     strPtr("ACME"),
		EmployerAddress:  strPtr("HQ"),
		SupervisorName:   strPtr("Jane"),
		SupervisorPhone:  strPtr("555"),
		SupervisorTitle:  strPtr("Manager"),
		SupervisorEmail:  strPtr("jane@acme.com"),
		InternshipStart:  strPtr("2024-01-01"),
		InternshipEnd:    strPtr("2024-06-01"),
		WorkHoursPerWeek: strPtr("40"),
	}
	affected, err := repo.ApplySupervisorPatch(context.Background(), "S1", patch)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormRepositoryApplySupervisorPatchPartial(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFormRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE form_i1_records SET employer_name = $1, updated_at = $2 WHERE student_id = $3")).
		WithArgs("", sqlmock.AnyArg(), "S1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.ApplySupervisorPatch(context.Background(), "S1", models.SupervisorPatch{EmployerName: strPtr("")})
	require.NoError(t, err)
	// duplicates from repeated student submissions are all patched
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func anyArgs(n int) []driver.Value {
	args := make([]driver.Value, n)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	return args
}

func strPtr(s string) *string { return &s }
