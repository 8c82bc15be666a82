package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/internship-forms-api/internal/models"
	appErrors "github.com/noah-isme/internship-forms-api/pkg/errors"
	"github.com/noah-isme/internship-forms-api/pkg/validation"
)

type formRepository interface {
	Insert(ctx context.Context, record *models.FormRecord) error
	FindByStudentID(ctx context.Context, studentID string) ([]models.FormRecord, error)
	FindAll(ctx context.Context) ([]models.FormRecord, error)
	FindBySupervisorEmail(ctx context.Context, email string) ([]models.FormRecord, error)
	ApplySupervisorPatch(ctx context.Context, studentID string, patch models.SupervisorPatch) (int64, error)
}

type queryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type submissionObserver interface {
	ObserveSubmission(phase string, accepted bool)
}

const (
	cacheKeyAllForms       = "forms:all"
	cacheKeyStudentPrefix  = "forms:student:"
	cacheKeySupervisorPref = "forms:supervisor:"
	cachePatternForms      = "forms:*"

	phaseStudent    = "student"
	phaseSupervisor = "supervisor"
)

// FormService owns the two-phase Form I-1 workflow: the student phase
// creates a record, the supervisor phase merges employer details onto it.
// Reads are served through the cache when one is configured.
type FormService struct {
	repo     formRepository
	cache    queryCache
	cacheTTL time.Duration
	metrics  submissionObserver
	logger   *zap.Logger
}

// NewFormService constructs the form service. cache and metrics may be nil.
func NewFormService(repo formRepository, cache queryCache, cacheTTL time.Duration, metrics submissionObserver, logger *zap.Logger) *FormService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// SubmitStudentPhase validates the raw field mapping and, when complete,
// creates the form record. The returned flag reflects the validation
// outcome only: an insert failure is logged and deliberately not surfaced,
// so the caller is told the submission was well formed even if the write
// ultimately failed.
func (s *FormService) SubmitStudentPhase(ctx context.Context, fields map[string]interface{}) bool {
	if !validation.AllPresent(fields) {
		s.observe(phaseStudent, false)
		return false
	}

	record := studentRecordFromFields(fields)
	if err := s.repo.Insert(ctx, record); err != nil {
		s.logger.Error("insert form record",
			zap.String("student_id", record.StudentID),
			zap.Error(err))
	} else {
		s.invalidate(ctx)
	}

	s.observe(phaseStudent, true)
	return true
}

// SubmitSupervisorPhase merges the supervisor-supplied fields onto the
// record(s) stored under the student id taken from the request body. The
// record must already exist; no presence validation is applied, so an
// incomplete submission partially overwrites with whatever was sent.
func (s *FormService) SubmitSupervisorPhase(ctx context.Context, fields map[string]interface{}) error {
	studentID := asString(fields["studentId"])

	matches, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		s.observe(phaseSupervisor, false)
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			fmt.Sprintf("Internal error : %v", err))
	}
	if len(matches) == 0 {
		s.observe(phaseSupervisor, false)
		return appErrors.Clone(appErrors.ErrInvalidStudentID, "")
	}

	patch := supervisorPatchFromFields(fields)
	affected, err := s.repo.ApplySupervisorPatch(ctx, studentID, patch)
	if err != nil {
		s.observe(phaseSupervisor, false)
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
			fmt.Sprintf("Internal error : %v", err))
	}
	if affected > 1 {
		// duplicates come from repeated student submissions; the patch lands
		// on every matching record
		s.logger.Warn("supervisor patch touched multiple records",
			zap.String("student_id", studentID),
			zap.Int64("affected", affected))
	}

	s.invalidate(ctx)
	s.observe(phaseSupervisor, true)
	return nil
}

// GetByStudentID returns the first record stored under the student id, or
// nil when none exists. A read miss is not an error.
func (s *FormService) GetByStudentID(ctx context.Context, studentID string) (*models.FormRecord, error) {
	records, err := s.studentForms(ctx, studentID)
	if err != nil {
		return nil, storageError(err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// ListAll returns the full collection with internals stripped at the
// serialisation boundary. An empty store yields an empty collection.
func (s *FormService) ListAll(ctx context.Context) ([]models.FormRecord, error) {
	var cached []models.FormRecord
	if s.cacheGet(ctx, cacheKeyAllForms, &cached) {
		return cached, nil
	}

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	if records == nil {
		records = []models.FormRecord{}
	}
	s.cacheSet(ctx, cacheKeyAllForms, records)
	return records, nil
}

// ListBySupervisor returns every record carrying the given supervisor
// email. No match is an empty collection, not a failure.
func (s *FormService) ListBySupervisor(ctx context.Context, email string) ([]models.FormRecord, error) {
	key := cacheKeySupervisorPref + email
	var cached []models.FormRecord
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.repo.FindBySupervisorEmail(ctx, email)
	if err != nil {
		return nil, storageError(err)
	}
	if records == nil {
		records = []models.FormRecord{}
	}
	s.cacheSet(ctx, key, records)
	return records, nil
}

// LookupStudentForms backs the supervisor portal's student lookup. Unlike
// the plain read facade, a miss here is reported as a not-found failure.
func (s *FormService) LookupStudentForms(ctx context.Context, studentID string) ([]models.FormRecord, error) {
	records, err := s.studentForms(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Something went wrong.")
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrStudentNotFound, "")
	}
	return records, nil
}

func (s *FormService) studentForms(ctx context.Context, studentID string) ([]models.FormRecord, error) {
	key := cacheKeyStudentPrefix + studentID
	var cached []models.FormRecord
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, records)
	return records, nil
}

func (s *FormService) cacheGet(ctx context.Context, key string, dest *[]models.FormRecord) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if appErrors.FromError(err).Code != appErrors.ErrCacheMiss.Code {
		s.logger.Warn("form cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (s *FormService) cacheSet(ctx context.Context, key string, records []models.FormRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, records, s.cacheTTL); err != nil {
		s.logger.Warn("form cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *FormService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, cachePatternForms); err != nil {
		s.logger.Warn("form cache invalidation failed", zap.Error(err))
	}
}

func (s *FormService) observe(phase string, accepted bool) {
	if s.metrics != nil {
		s.metrics.ObserveSubmission(phase, accepted)
	}
}

func storageError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "storage failure")
}

func studentRecordFromFields(fields map[string]interface{}) *models.FormRecord {
	return &models.FormRecord{
		StudentID:          asString(fields["studentId"]),
		StudentName:        asString(fields["name"]),
		StudentAddress:     asString(fields["address"]),
		StudentHomePhone:   asString(fields["homePhone"]),
		StudentMobilePhone: asString(fields["mobilePhone"]),
		StudentEmails:      asStringList(fields["emailAddresses"]),
		Year:               asString(fields["year"]),
		Semester:           asString(fields["semester"]),
		CGPA:               asString(fields["cgpa"]),
		AssignedSupervisor: asString(fields["assignedSupervisor"]),
		// duplicated from the assigned supervisor at creation time; the
		// supervisor phase may overwrite it later
		SupervisorEmail: asString(fields["assignedSupervisor"]),
	}
}

func supervisorPatchFromFields(fields map[string]interface{}) models.SupervisorPatch {
	sent := func(key string) *string {
		value, ok := fields[key]
		if !ok {
			return nil
		}
		s := asString(value)
		return &s
	}
	return models.SupervisorPatch{
		EmployerName:     sent("employerName"),
		EmployerAddress:  sent("employerAddress"),
		SupervisorName:   sent("supervisorName"),
		SupervisorPhone:  sent("supervisorPhone"),
		SupervisorTitle:  sent("supervisorTitle"),
		SupervisorEmail:  sent("supervisorEmail"),
		InternshipStart:  sent("internshipStart"),
		InternshipEnd:    sent("internshipEnd"),
		WorkHoursPerWeek: sent("workHoursPerWeek"),
	}
}

// asString renders a decoded JSON value as the stored text form. Fields
// are schemaless on the wire, so numbers and booleans are accepted and
// stringified rather than rejected.
func asString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asStringList(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, asString(item))
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{asString(v)}
	}
}
