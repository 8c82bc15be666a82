package models

import (
	"time"

	"github.com/lib/pq"
)

// FormRecord is one internship-placement form (Form I-1) for one student.
// The student phase creates the record; the supervisor phase later merges
// the employer block onto it. StudentID is the merge key across the two
// phases. The JSON names mirror the stored field names consumed by the
// existing frontend; id and the timestamps are storage-internal and never
// leave the API.
type FormRecord struct {
	ID        string `db:"id" json:"-"`
	StudentID string `db:"student_id" json:"StudentId"`

	StudentName        string         `db:"student_name" json:"StudentName"`
	StudentAddress     string         `db:"student_address" json:"StudentAddress"`
	StudentHomePhone   string         `db:"student_home_phone" json:"StudentHomePhone"`
	StudentMobilePhone string         `db:"student_mobile_phone" json:"StudentMobilePhone"`
	StudentEmails      pq.StringArray `db:"student_emails" json:"StudentEmails"`
	Year               string         `db:"year" json:"Year"`
	Semester           string         `db:"semester" json:"Semester"`
	CGPA               string         `db:"cgpa" json:"CGPA"`
	AssignedSupervisor string         `db:"assigned_supervisor" json:"AssignedSupervisor"`
	SupervisorEmail    string         `db:"supervisor_email" json:"SupervisorEmail"`

	EmployerName     string `db:"employer_name" json:"EmployerName"`
	EmployerAddress  string `db:"employer_address" json:"EmployerAddress"`
	SupervisorName   string `db:"supervisor_name" json:"SupervisorName"`
	SupervisorPhone  string `db:"supervisor_phone" json:"SupervisorPhone"`
	SupervisorTitle  string `db:"supervisor_title" json:"SupervisorTitle"`
	InternshipStart  string `db:"internship_start" json:"InternshipStart"`
	InternshipEnd    string `db:"internship_end" json:"InternshipEnd"`
	WorkHoursPerWeek string `db:"work_hours_per_week" json:"WorkHoursPerWeek"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// SupervisorPatch carries the supervisor-phase fields of a submission.
// A nil pointer means the field was absent from the request body and must
// be left untouched; an empty string was sent explicitly and overwrites.
type SupervisorPatch struct {
	EmployerName     *string
	EmployerAddress  *string
	SupervisorName   *string
	SupervisorPhone  *string
	SupervisorTitle  *string
	SupervisorEmail  *string
	InternshipStart  *string
	InternshipEnd    *string
	WorkHoursPerWeek *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p SupervisorPatch) IsEmpty() bool {
	return p.EmployerName == nil &&
		p.EmployerAddress == nil &&
		p.SupervisorName == nil &&
		p.SupervisorPhone == nil &&
		p.SupervisorTitle == nil &&
		p.SupervisorEmail == nil &&
		p.InternshipStart == nil &&
		p.InternshipEnd == nil &&
		p.WorkHoursPerWeek == nil
}
