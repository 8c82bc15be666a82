package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-forms-api/internal/models"
	appErrors "github.com/noah-isme/internship-forms-api/pkg/errors"
)

type supervisorServiceMock struct {
	accounts []models.SupervisorAccount
	token    string
	loginErr error
	listErr  error

	createAccepted bool
	createFields   map[string]interface{}
}

func (m *supervisorServiceMock) Login(ctx context.Context, req models.LoginRequest) ([]models.SupervisorAccount, string, error) {
	return m.accounts, m.token, m.loginErr
}

func (m *supervisorServiceMock) CreateAccount(ctx context.Context, fields map[string]interface{}) bool {
	m.createFields = fields
	return m.createAccepted
}

func (m *supervisorServiceMock) ListAccounts(ctx context.Context) ([]models.SupervisorAccount, error) {
	return m.accounts, m.listErr
}

type studentLookupMock struct {
	records []models.FormRecord
	err     error
}

func (m *studentLookupMock) LookupStudentForms(ctx context.Context, studentID string) ([]models.FormRecord, error) {
	return m.records, m.err
}

func TestSupervisorHandlerLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &supervisorServiceMock{
		accounts: []models.SupervisorAccount{{SupervisorID: "AB12C", SupervisorEmail: "sup@x.com"}},
		token:    "signed.jwt.token",
	}
	h := NewSupervisorHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/supervisor/login", `{"SupervisorEmail":"sup@x.com","SupervisorPassword":"pw"}`)

	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "signed.jwt.token", body["token"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	account := data[0].(map[string]interface{})
	assert.Equal(t, "sup@x.com", account["SupervisorEmail"])
	_, leaked := account["SupervisorPassword"]
	assert.False(t, leaked)
}

func TestSupervisorHandlerLoginInvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSupervisorHandler(&supervisorServiceMock{loginErr: appErrors.ErrInvalidCredentials}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/supervisor/login", `{"SupervisorEmail":"sup@x.com","SupervisorPassword":"wrong"}`)

	h.Login(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid login Credentials provided.", body["message"])
}

func TestSupervisorHandlerLoginMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSupervisorHandler(&supervisorServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/supervisor/login", `{"SupervisorEmail":`)

	h.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSupervisorHandlerGetStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lookup := &studentLookupMock{records: []models.FormRecord{{StudentID: "S1"}}}
	h := NewSupervisorHandler(&supervisorServiceMock{}, lookup)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/supervisor/get-student/S1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "S1"}}

	h.GetStudent(c)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
}

func TestSupervisorHandlerGetStudentMiss(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSupervisorHandler(&supervisorServiceMock{}, &studentLookupMock{err: appErrors.ErrStudentNotFound})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/supervisor/get-student/S404", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "S404"}}

	h.GetStudent(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid Student ID provided.", body["message"])
}

func TestSupervisorHandlerAddSupervisor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &supervisorServiceMock{createAccepted: true}
	h := NewSupervisorHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/supervisor/add-supervisor", `{"SupervisorEmail":"sup@x.com","SupervisorName":"A","SupervisorPassword":"pw"}`)

	h.AddSupervisor(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeEnvelope(t, w)["success"])
	assert.Equal(t, "sup@x.com", mockSvc.createFields["SupervisorEmail"])
}

func TestSupervisorHandlerAddSupervisorIncomplete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSupervisorHandler(&supervisorServiceMock{createAccepted: false}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/supervisor/add-supervisor", `{"SupervisorEmail":""}`)

	h.AddSupervisor(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeEnvelope(t, w)["success"])
}

func TestSupervisorHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSupervisorHandler(&supervisorServiceMock{accounts: []models.SupervisorAccount{}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/supervisor", nil)
	c.Request = req

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, data)
}
