package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB opens gorm over sqlmock. Repositories are stubbed in tests, so
// only transaction boundaries hit the mock.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type mockScheduleRuleRepo struct {
	createFn              func(rule *entity.ScheduleRule) error
	findByIDFn            func(id int) (*entity.ScheduleRule, error)
	findByIDUnscopedFn    func(id int) (*entity.ScheduleRule, error)
	findActiveDatedFn     func(doctorID uuid.UUID, date time.Time) (*entity.ScheduleRule, error)
	findActiveRecurringFn func(doctorID uuid.UUID, weekday int) (*entity.ScheduleRule, error)
	findForDateFn         func(doctorID uuid.UUID, date time.Time, weekday int) ([]entity.ScheduleRule, error)
	findByDoctorIDFn      func(doctorID uuid.UUID, kind entity.RuleKind) ([]entity.ScheduleRule, error)
	updateFn              func(rule *entity.ScheduleRule) error
	deleteFn              func(id int) (int64, error)
	restoreFn             func(id int) error
}

func (m *mockScheduleRuleRepo) Create(db *gorm.DB, rule *entity.ScheduleRule) error {
	if m.createFn != nil {
		return m.createFn(rule)
	}
	return nil
}

func (m *mockScheduleRuleRepo) FindByID(db *gorm.DB, id int) (*entity.ScheduleRule, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return nil, nil
}

func (m *mockScheduleRuleRepo) FindByIDUnscoped(db *gorm.DB, id int) (*entity.ScheduleRule, error) {
	if m.findByIDUnscopedFn != nil {
		return m.findByIDUnscopedFn(id)
	}
	return nil, nil
}

func (m *mockScheduleRuleRepo) FindActiveDated(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.ScheduleRule, error) {
	if m.findActiveDatedFn != nil {
		return m.findActiveDatedFn(doctorID, date)
	}
	return nil, nil
}

func (m *mockScheduleRuleRepo) FindActiveRecurring(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.ScheduleRule, error) {
	if m.findActiveRecurringFn != nil {
		return m.findActiveRecurringFn(doctorID, weekday)
	}
	return nil, nil
}

func (m *mockScheduleRuleRepo) FindForDate(db *gorm.DB, doctorID uuid.UUID, date time.Time, weekday int) ([]entity.ScheduleRule, error) {
	if m.findForDateFn != nil {
		return m.findForDateFn(doctorID, date, weekday)
	}
	return nil, nil
}

func (m *mockScheduleRuleRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, kind entity.RuleKind) ([]entity.ScheduleRule, error) {
	if m.findByDoctorIDFn != nil {
		return m.findByDoctorIDFn(doctorID, kind)
	}
	return nil, nil
}

func (m *mockScheduleRuleRepo) Update(db *gorm.DB, rule *entity.ScheduleRule) error {
	if m.updateFn != nil {
		return m.updateFn(rule)
	}
	return nil
}

func (m *mockScheduleRuleRepo) Delete(db *gorm.DB, id int) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return 1, nil
}

func (m *mockScheduleRuleRepo) Restore(db *gorm.DB, id int) error {
	if m.restoreFn != nil {
		return m.restoreFn(id)
	}
	return nil
}

type mockDoctorProfileRepo struct {
	findByUserIDFn func(userID uuid.UUID) (*entity.DoctorProfile, error)
	findAllFn      func() ([]entity.DoctorProfile, error)
	createFn       func(profile *entity.DoctorProfile) error
	updateFn       func(profile *entity.DoctorProfile) error
	deleteFn       func(userID uuid.UUID) (int64, error)
}

func (m *mockDoctorProfileRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	if m.createFn != nil {
		return m.createFn(profile)
	}
	return nil
}

func (m *mockDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockDoctorProfileRepo) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	if m.findAllFn != nil {
		return m.findAllFn()
	}
	return nil, nil
}

func (m *mockDoctorProfileRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	if m.updateFn != nil {
		return m.updateFn(profile)
	}
	return nil
}

func (m *mockDoctorProfileRepo) Delete(db *gorm.DB, userID uuid.UUID) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(userID)
	}
	return 1, nil
}

type mockPatientProfileRepo struct {
	findByUserIDFn         func(userID uuid.UUID) (*entity.PatientProfile, error)
	findByUserIDUnscopedFn func(userID uuid.UUID) (*entity.PatientProfile, error)
	findAllFn              func() ([]entity.PatientProfile, error)
	createFn               func(profile *entity.PatientProfile) error
	updateFn               func(profile *entity.PatientProfile) error
	deleteFn               func(userID uuid.UUID) (int64, error)
	restoreFn              func(userID uuid.UUID) error
}

func (m *mockPatientProfileRepo) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	if m.createFn != nil {
		return m.createFn(profile)
	}
	return nil
}

func (m *mockPatientProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockPatientProfileRepo) FindByUserIDUnscoped(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	if m.findByUserIDUnscopedFn != nil {
		return m.findByUserIDUnscopedFn(userID)
	}
	return nil, nil
}

func (m *mockPatientProfileRepo) FindAll(db *gorm.DB) ([]entity.PatientProfile, error) {
	if m.findAllFn != nil {
		return m.findAllFn()
	}
	return nil, nil
}

func (m *mockPatientProfileRepo) Update(db *gorm.DB, profile *entity.PatientProfile) error {
	if m.updateFn != nil {
		return m.updateFn(profile)
	}
	return nil
}

func (m *mockPatientProfileRepo) Delete(db *gorm.DB, userID uuid.UUID) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(userID)
	}
	return 1, nil
}

func (m *mockPatientProfileRepo) Restore(db *gorm.DB, userID uuid.UUID) error {
	if m.restoreFn != nil {
		return m.restoreFn(userID)
	}
	return nil
}

type mockAttentionRepo struct {
	createFn            func(attention *entity.Attention) error
	findByIDFn          func(id uuid.UUID) (*entity.Attention, error)
	findAllFn           func(filter *entity.AttentionFilter) ([]entity.Attention, error)
	findBySlotFn        func(doctorID uuid.UUID, date time.Time, slotStartTime string) (*entity.Attention, error)
	countActiveForDayFn func(doctorID uuid.UUID, date time.Time) (int64, error)
	updateFn            func(attention *entity.Attention) error
	deleteFn            func(id uuid.UUID) (int64, error)
}

func (m *mockAttentionRepo) Create(db *gorm.DB, attention *entity.Attention) error {
	if m.createFn != nil {
		return m.createFn(attention)
	}
	return nil
}

func (m *mockAttentionRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Attention, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return nil, nil
}

func (m *mockAttentionRepo) FindAll(db *gorm.DB, filter *entity.AttentionFilter) ([]entity.Attention, error) {
	if m.findAllFn != nil {
		return m.findAllFn(filter)
	}
	return nil, nil
}

func (m *mockAttentionRepo) FindBySlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, slotStartTime string) (*entity.Attention, error) {
	if m.findBySlotFn != nil {
		return m.findBySlotFn(doctorID, date, slotStartTime)
	}
	return nil, nil
}

func (m *mockAttentionRepo) CountActiveForDay(db *gorm.DB, doctorID uuid.UUID, date time.Time) (int64, error) {
	if m.countActiveForDayFn != nil {
		return m.countActiveForDayFn(doctorID, date)
	}
	return 0, nil
}

func (m *mockAttentionRepo) Update(db *gorm.DB, attention *entity.Attention) error {
	if m.updateFn != nil {
		return m.updateFn(attention)
	}
	return nil
}

func (m *mockAttentionRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return 1, nil
}

// noopAuditService satisfies service.AuditService without touching storage.
type noopAuditService struct{}

func (noopAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return nil
}

func (noopAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return nil
}

func (noopAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return nil
}
