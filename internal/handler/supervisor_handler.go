package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-forms-api/internal/models"
	appErrors "github.com/noah-isme/internship-forms-api/pkg/errors"
	"github.com/noah-isme/internship-forms-api/pkg/response"
)

type supervisorService interface {
	Login(ctx context.Context, req models.LoginRequest) ([]models.SupervisorAccount, string, error)
	CreateAccount(ctx context.Context, fields map[string]interface{}) bool
	ListAccounts(ctx context.Context) ([]models.SupervisorAccount, error)
}

type studentLookup interface {
	LookupStudentForms(ctx context.Context, studentID string) ([]models.FormRecord, error)
}

// SupervisorHandler exposes the supervisor directory endpoints.
type SupervisorHandler struct {
	supervisors supervisorService
	forms       studentLookup
}

// NewSupervisorHandler constructs SupervisorHandler.
func NewSupervisorHandler(supervisors supervisorService, forms studentLookup) *SupervisorHandler {
	return &SupervisorHandler{supervisors: supervisors, forms: forms}
}

// List godoc
// @Summary List supervisor accounts
// @Tags Supervisors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /supervisor [get]
func (h *SupervisorHandler) List(c *gin.Context) {
	accounts, err := h.supervisors.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, accounts)
}

// Login godoc
// @Summary Supervisor credential check
// @Tags Supervisors
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /supervisor/login [post]
func (h *SupervisorHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	accounts, token, err := h.supervisors.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, response.Envelope{Success: true, Data: accounts, Token: token})
}

// GetStudent godoc
// @Summary Look up a student's forms by registration number
// @Tags Supervisors
// @Produce json
// @Param id path string true "Student registration number"
// @Success 200 {object} response.Envelope
// @Router /supervisor/get-student/{id} [get]
func (h *SupervisorHandler) GetStudent(c *gin.Context) {
	records, err := h.forms.LookupStudentForms(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, records)
}

// AddSupervisor godoc
// @Summary Create a supervisor account
// @Tags Supervisors
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /supervisor/add-supervisor [post]
func (h *SupervisorHandler) AddSupervisor(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	accepted := h.supervisors.CreateAccount(c.Request.Context(), fields)
	response.Submission(c, accepted)
}
