package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-forms-api/internal/models"
	appErrors "github.com/noah-isme/internship-forms-api/pkg/errors"
	"github.com/noah-isme/internship-forms-api/pkg/response"
)

type formService interface {
	SubmitStudentPhase(ctx context.Context, fields map[string]interface{}) bool
	SubmitSupervisorPhase(ctx context.Context, fields map[string]interface{}) error
	GetByStudentID(ctx context.Context, studentID string) (*models.FormRecord, error)
	ListAll(ctx context.Context) ([]models.FormRecord, error)
	ListBySupervisor(ctx context.Context, email string) ([]models.FormRecord, error)
}

type formExporter interface {
	RecordsCSV(ctx context.Context) ([]byte, error)
	FormPDF(ctx context.Context, studentID string) ([]byte, error)
}

// FormHandler exposes the Form I-1 endpoints.
type FormHandler struct {
	forms   formService
	exports formExporter
}

// NewFormHandler constructs FormHandler. exports may be nil when the export
// endpoints are disabled.
func NewFormHandler(forms formService, exports formExporter) *FormHandler {
	return &FormHandler{forms: forms, exports: exports}
}

// SubmitStudent godoc
// @Summary Submit the student perspective of Form I-1
// @Tags Forms
// @Accept json
// @Produce json
// @Param studentId path string true "Student registration number"
// @Success 200 {object} response.Envelope
// @Router /form-i-1/student/{studentId} [post]
func (h *FormHandler) SubmitStudent(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	// the student id inside the body is the one that gets stored; the path
	// parameter only shapes the route
	accepted := h.forms.SubmitStudentPhase(c.Request.Context(), fields)
	response.Submission(c, accepted)
}

// SubmitSupervisor godoc
// @Summary Submit the supervisor perspective of Form I-1
// @Tags Forms
// @Accept json
// @Produce json
// @Param studentId path string true "Student registration number"
// @Success 200 {object} response.Envelope
// @Router /form-i-1/supervisor/{studentId} [post]
func (h *FormHandler) SubmitSupervisor(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.forms.SubmitSupervisorPhase(c.Request.Context(), fields); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Supervisor details added successfully")
}

// List godoc
// @Summary List all Form I-1 records
// @Tags Forms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /form-i-1 [get]
func (h *FormHandler) List(c *gin.Context) {
	records, err := h.forms.ListAll(c.Request.Context())
	if err != nil {
		response.ErrorData(c, err)
		return
	}
	response.Data(c, records)
}

// GetByStudent godoc
// @Summary Get the Form I-1 of a specific student
// @Tags Forms
// @Produce json
// @Param studentId path string true "Student registration number"
// @Success 200 {object} response.Envelope
// @Router /form-i-1/student/{studentId} [get]
func (h *FormHandler) GetByStudent(c *gin.Context) {
	record, err := h.forms.GetByStudentID(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.ErrorData(c, err)
		return
	}
	if record == nil {
		// a read miss is still a success with no payload
		response.Data(c, nil)
		return
	}
	response.Data(c, record)
}

// ListBySupervisor godoc
// @Summary List Form I-1 records under a supervisor
// @Tags Forms
// @Produce json
// @Param supervisorEmail path string true "Supervisor email"
// @Success 200 {object} response.Envelope
// @Router /form-i-1/supervisor/{supervisorEmail} [get]
func (h *FormHandler) ListBySupervisor(c *gin.Context) {
	records, err := h.forms.ListBySupervisor(c.Request.Context(), c.Param("supervisorEmail"))
	if err != nil {
		response.ErrorData(c, err)
		return
	}
	response.Data(c, records)
}

// ExportCSV godoc
// @Summary Download all Form I-1 records as CSV
// @Tags Forms
// @Produce text/csv
// @Success 200
// @Router /form-i-1/export/csv [get]
func (h *FormHandler) ExportCSV(c *gin.Context) {
	data, err := h.exports.RecordsCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="form-i-1-records.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportPDF godoc
// @Summary Download one student's Form I-1 as PDF
// @Tags Forms
// @Produce application/pdf
// @Param studentId path string true "Student registration number"
// @Success 200
// @Router /form-i-1/student/{studentId}/pdf [get]
func (h *FormHandler) ExportPDF(c *gin.Context) {
	studentID := c.Param("studentId")
	data, err := h.exports.FormPDF(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="form-i-1-%s.pdf"`, studentID))
	c.Data(http.StatusOK, "application/pdf", data)
}
