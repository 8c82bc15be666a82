package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/internship-forms-api/internal/models"
)

const formColumns = `id, student_id, student_name, student_address, student_home_phone, student_mobile_phone,
        student_emails, year, semester, cgpa, assigned_supervisor, supervisor_email,
        employer_name, employer_address, supervisor_name, supervisor_phone, supervisor_title,
        internship_start, internship_end, work_hours_per_week, created_at, updated_at`

// FormRepository manages persistence for Form I-1 records.
type FormRepository struct {
	db *sqlx.DB
}

// NewFormRepository constructs a FormRepository.
func NewFormRepository(db *sqlx.DB) *FormRepository {
	return &FormRepository{db: db}
}

// Insert persists a new form record. There is deliberately no uniqueness
// check on student_id: a repeated student-phase submission inserts a
// second record, matching the behaviour the frontend was built against.
func (r *FormRepository) Insert(ctx context.Context, record *models.FormRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if record.StudentEmails == nil {
		record.StudentEmails = []string{}
	}
	const query = `INSERT INTO form_i1_records (id, student_id, student_name, student_address, student_home_phone, student_mobile_phone,
        student_emails, year, semester, cgpa, assigned_supervisor, supervisor_email,
        employer_name, employer_address, supervisor_name, supervisor_phone, supervisor_title,
        internship_start, internship_end, work_hours_per_week, created_at, updated_at)
        VALUES (:id, :student_id, :student_name, :student_address, :student_home_phone, :student_mobile_phone,
        :student_emails, :year, :semester, :cgpa, :assigned_supervisor, :supervisor_email,
        :employer_name, :employer_address, :supervisor_name, :supervisor_phone, :supervisor_title,
        :internship_start, :internship_end, :work_hours_per_week, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("insert form record: %w", err)
	}
	return nil
}

// FindByStudentID returns every record stored under the given student id.
// Duplicates from repeated student submissions all come back.
func (r *FormRepository) FindByStudentID(ctx context.Context, studentID string) ([]models.FormRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM form_i1_records WHERE student_id = $1 ORDER BY created_at`, formColumns)
	var records []models.FormRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("find forms by student id: %w", err)
	}
	return records, nil
}

// FindAll returns the full collection of form records.
func (r *FormRepository) FindAll(ctx context.Context) ([]models.FormRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM form_i1_records ORDER BY created_at`, formColumns)
	var records []models.FormRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("find all forms: %w", err)
	}
	return records, nil
}

// FindBySupervisorEmail returns every record whose stored supervisor email
// equals the given value.
func (r *FormRepository) FindBySupervisorEmail(ctx context.Context, email string) ([]models.FormRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM form_i1_records WHERE supervisor_email = $1 ORDER BY created_at`, formColumns)
	var records []models.FormRecord
	if err := r.db.SelectContext(ctx, &records, query, email); err != nil {
		return nil, fmt.Errorf("find forms by supervisor email: %w", err)
	}
	return records, nil
}

// ApplySupervisorPatch merges the supervisor-phase fields onto every record
// keyed by the student id and reports how many rows were touched. Only
// fields present in the patch are written; sent empty strings overwrite.
func (r *FormRepository) ApplySupervisorPatch(ctx context.Context, studentID string, patch models.SupervisorPatch) (int64, error) {
	var sets []string
	var args []interface{}
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, *value)
	}
	add("employer_name", patch.EmployerName)
	add("employer_address", patch.EmployerAddress)
	add("supervisor_name", patch.SupervisorName)
	add("supervisor_phone", patch.SupervisorPhone)
	add("supervisor_title", patch.SupervisorTitle)
	add("supervisor_email", patch.SupervisorEmail)
	add("internship_start", patch.InternshipStart)
	add("internship_end", patch.InternshipEnd)
	add("work_hours_per_week", patch.WorkHoursPerWeek)

	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, studentID)

	query := fmt.Sprintf("UPDATE form_i1_records SET %s WHERE student_id = $%d", strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("apply supervisor patch: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("supervisor patch rows affected: %w", err)
	}
	return affected, nil
}
