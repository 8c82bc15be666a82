package service

import (
	"context"
	"strings"

	"github.com/noah-isme/internship-forms-api/internal/models"
	appErrors "github.com/noah-isme/internship-forms-api/pkg/errors"
	"github.com/noah-isme/internship-forms-api/pkg/export"
)

type exportFormReader interface {
	FindAll(ctx context.Context) ([]models.FormRecord, error)
	FindByStudentID(ctx context.Context, studentID string) ([]models.FormRecord, error)
}

var exportHeaders = []string{
	"StudentId", "StudentName", "StudentAddress", "StudentHomePhone", "StudentMobilePhone",
	"StudentEmails", "Year", "Semester", "CGPA", "AssignedSupervisor", "SupervisorEmail",
	"EmployerName", "EmployerAddress", "SupervisorName", "SupervisorPhone", "SupervisorTitle",
	"InternshipStart", "InternshipEnd", "WorkHoursPerWeek",
}

// ExportService renders form records into downloadable documents.
type ExportService struct {
	forms exportFormReader
	csv   *export.CSVExporter
	pdf   *export.PDFExporter
}

// NewExportService constructs the export service.
func NewExportService(forms exportFormReader) *ExportService {
	return &ExportService{
		forms: forms,
		csv:   export.NewCSVExporter(),
		pdf:   export.NewPDFExporter(),
	}
}

// RecordsCSV renders the full form collection as CSV.
func (s *ExportService) RecordsCSV(ctx context.Context) ([]byte, error) {
	records, err := s.forms.FindAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load form records")
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.StudentID, record.StudentName, record.StudentAddress, record.StudentHomePhone, record.StudentMobilePhone,
			strings.Join(record.StudentEmails, ";"), record.Year, record.Semester, record.CGPA, record.AssignedSupervisor, record.SupervisorEmail,
			record.EmployerName, record.EmployerAddress, record.SupervisorName, record.SupervisorPhone, record.SupervisorTitle,
			record.InternshipStart, record.InternshipEnd, record.WorkHoursPerWeek,
		})
	}

	data, err := s.csv.Render(exportHeaders, rows)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return data, nil
}

// FormPDF renders the first form stored under the student id as a printable
// document.
func (s *ExportService) FormPDF(ctx context.Context, studentID string) ([]byte, error) {
	records, err := s.forms.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load form record")
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no form found for student")
	}
	record := records[0]

	sections := []export.Section{
		{
			Heading: "Student Details",
			Fields: []export.Field{
				{Label: "Student Id", Value: record.StudentID},
				{Label: "Name", Value: record.StudentName},
				{Label: "Address", Value: record.StudentAddress},
				{Label: "Home Phone", Value: record.StudentHomePhone},
				{Label: "Mobile Phone", Value: record.StudentMobilePhone},
				{Label: "Email Addresses", Value: strings.Join(record.StudentEmails, ", ")},
				{Label: "Year", Value: record.Year},
				{Label: "Semester", Value: record.Semester},
				{Label: "CGPA", Value: record.CGPA},
				{Label: "Assigned Supervisor", Value: record.AssignedSupervisor},
			},
		},
		{
			Heading: "Internship Placement",
			Fields: []export.Field{
				{Label: "Employer", Value: record.EmployerName},
				{Label: "Employer Address", Value: record.EmployerAddress},
				{Label: "Supervisor", Value: record.SupervisorName},
				{Label: "Supervisor Title", Value: record.SupervisorTitle},
				{Label: "Supervisor Phone", Value: record.SupervisorPhone},
				{Label: "Supervisor Email", Value: record.SupervisorEmail},
				{Label: "Start Date", Value: record.InternshipStart},
				{Label: "End Date", Value: record.InternshipEnd},
				{Label: "Hours / Week", Value: record.WorkHoursPerWeek},
			},
		},
	}

	data, err := s.pdf.RenderForm("Form I-1", sections)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return data, nil
}
