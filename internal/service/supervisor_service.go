package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/internship-forms-api/internal/models"
	appErrors "github.com/noah-isme/internship-forms-api/pkg/errors"
	"github.com/noah-isme/internship-forms-api/pkg/validation"
)

type supervisorRepository interface {
	Insert(ctx context.Context, account *models.SupervisorAccount) error
	FindAll(ctx context.Context) ([]models.SupervisorAccount, error)
	FindByCredentials(ctx context.Context, email, password string) ([]models.SupervisorAccount, error)
}

// SupervisorConfig holds token issuance settings for the login endpoint.
type SupervisorConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
}

// SupervisorService handles the supervisor directory: credential lookup
// and account creation.
type SupervisorService struct {
	repo      supervisorRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    SupervisorConfig
}

// NewSupervisorService constructs the supervisor service.
func NewSupervisorService(repo supervisorRepository, validate *validator.Validate, logger *zap.Logger, config SupervisorConfig) *SupervisorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupervisorService{repo: repo, validator: validate, logger: logger, config: config}
}

// Login matches the submitted credentials against stored accounts by
// equality and issues an access token on success. The comparison is
// plaintext: that is the contract the deployed frontend relies on.
func (s *SupervisorService) Login(ctx context.Context, req models.LoginRequest) ([]models.SupervisorAccount, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	accounts, err := s.repo.FindByCredentials(ctx, req.SupervisorEmail, req.SupervisorPassword)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Something went wrong.")
	}
	if len(accounts) == 0 {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	token, err := s.issueToken(req.SupervisorEmail)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Something went wrong.")
	}

	return accounts, token, nil
}

// CreateAccount validates presence over the raw field mapping and, when
// complete, stores a new supervisor account under a generated id. The
// returned flag mirrors the student-phase contract: it reflects the
// validation outcome, an insert failure is logged only.
func (s *SupervisorService) CreateAccount(ctx context.Context, fields map[string]interface{}) bool {
	if !validation.AllPresent(fields) {
		return false
	}

	account := &models.SupervisorAccount{
		SupervisorID:       newSupervisorID(),
		SupervisorName:     asString(fields["SupervisorName"]),
		SupervisorEmail:    asString(fields["SupervisorEmail"]),
		SupervisorPassword: asString(fields["SupervisorPassword"]),
	}
	if err := s.repo.Insert(ctx, account); err != nil {
		s.logger.Error("insert supervisor account",
			zap.String("supervisor_email", account.SupervisorEmail),
			zap.Error(err))
	}

	return true
}

// ListAccounts returns every supervisor account, passwords stripped at the
// serialisation boundary.
func (s *SupervisorService) ListAccounts(ctx context.Context) ([]models.SupervisorAccount, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Something went wrong.")
	}
	if accounts == nil {
		accounts = []models.SupervisorAccount{}
	}
	return accounts, nil
}

func (s *SupervisorService) issueToken(email string) (string, error) {
	issuedAt := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

const supervisorIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newSupervisorID generates the 5-character alphanumeric supervisor id
// format the directory has always used.
func newSupervisorID() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%05d", time.Now().UnixNano()%100000)
	}
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = supervisorIDAlphabet[int(b)%len(supervisorIDAlphabet)]
	}
	return string(out)
}
