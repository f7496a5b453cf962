package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAttention(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	actorID := uuid.New()

	baseReq := func() *dto.CreateAttentionRequest {
		return &dto.CreateAttentionRequest{
			PatientID:     patientID,
			DoctorID:      doctorID,
			AttentionDate: "2026-09-07",
			SlotStartTime: "09:30",
			Reason:        "Checkup",
			Fee:           "150.00",
		}
	}

	patientRepo := &mockPatientProfileRepo{
		findByUserIDFn: func(id uuid.UUID) (*entity.PatientProfile, error) {
			return &entity.PatientProfile{UserID: id, DocumentNumber: "12345678", Gender: entity.GenderFemale}, nil
		},
	}
	doctorRepo := &mockDoctorProfileRepo{
		findByUserIDFn: func(id uuid.UUID) (*entity.DoctorProfile, error) {
			return activeDoctor(id), nil
		},
	}
	// Monday morning, four half-hour slots: 09:00 09:30 10:00 10:30.
	ruleRepo := func(maxSlots *int) *mockScheduleRuleRepo {
		return &mockScheduleRuleRepo{
			findForDateFn: func(id uuid.UUID, day time.Time, weekday int) ([]entity.ScheduleRule, error) {
				return []entity.ScheduleRule{
					{
						ID: 1, DoctorID: id, Kind: entity.RuleKindRecurring, Weekday: intPtr(weekday),
						StartTime: "09:00", EndTime: "11:00", SlotDurationMinutes: 30,
						MaxSlots: maxSlots, Active: true,
					},
				}, nil
			},
		}
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		attentionRepo := &mockAttentionRepo{
			createFn: func(a *entity.Attention) error {
				a.ID = uuid.New()
				return nil
			},
		}
		u := NewAttentionUsecase(db, testLogger(), attentionRepo, ruleRepo(nil), doctorRepo, patientRepo, noopAuditService{})

		resp, err := u.CreateAttention(context.Background(), baseReq(), &actorID)
		require.NoError(t, err)
		assert.Equal(t, "2026-09-07", resp.AttentionDate)
		assert.Equal(t, "09:30", resp.SlotStartTime)
		assert.Equal(t, "scheduled", resp.Status)
		assert.True(t, resp.Fee.Equal(decimal.RequireFromString("150.00")))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("books against a rule stored with seconds", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		// A persisted rule reads back from the TIME columns as HH:MM:SS;
		// the requested HH:MM slot must still match.
		storedRuleRepo := &mockScheduleRuleRepo{
			findForDateFn: func(id uuid.UUID, day time.Time, weekday int) ([]entity.ScheduleRule, error) {
				return []entity.ScheduleRule{
					{
						ID: 1, DoctorID: id, Kind: entity.RuleKindRecurring, Weekday: intPtr(weekday),
						StartTime: "09:00:00", EndTime: "11:00:00", SlotDurationMinutes: 30, Active: true,
					},
				}, nil
			},
		}
		u := NewAttentionUsecase(db, testLogger(), &mockAttentionRepo{}, storedRuleRepo, doctorRepo, patientRepo, noopAuditService{})

		resp, err := u.CreateAttention(context.Background(), baseReq(), &actorID)
		require.NoError(t, err)
		assert.Equal(t, "09:30", resp.SlotStartTime)
	})

	t.Run("invalid date format", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewAttentionUsecase(db, testLogger(), &mockAttentionRepo{}, ruleRepo(nil), doctorRepo, patientRepo, noopAuditService{})

		req := baseReq()
		req.AttentionDate = "07/09/2026"
		_, err := u.CreateAttention(context.Background(), req, &actorID)
		assert.Equal(t, ErrInvalidDateFormat, err)
	})

	t.Run("invalid fee", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewAttentionUsecase(db, testLogger(), &mockAttentionRepo{}, ruleRepo(nil), doctorRepo, patientRepo, noopAuditService{})

		req := baseReq()
		req.Fee = "abc"
		_, err := u.CreateAttention(context.Background(), req, &actorID)
		assert.Equal(t, ErrInvalidAmount, err)
	})

	t.Run("no schedule for date", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		u := NewAttentionUsecase(db, testLogger(), &mockAttentionRepo{}, &mockScheduleRuleRepo{}, doctorRepo, patientRepo, noopAuditService{})

		_, err := u.CreateAttention(context.Background(), baseReq(), &actorID)
		assert.Equal(t, ErrNoScheduleForDate, err)
	})

	t.Run("slot not in schedule", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		u := NewAttentionUsecase(db, testLogger(), &mockAttentionRepo{}, ruleRepo(nil), doctorRepo, patientRepo, noopAuditService{})

		req := baseReq()
		req.SlotStartTime = "09:15"
		_, err := u.CreateAttention(context.Background(), req, &actorID)
		assert.Equal(t, ErrInvalidSlot, err)
	})

	t.Run("slot already taken", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		attentionRepo := &mockAttentionRepo{
			findBySlotFn: func(id uuid.UUID, date time.Time, slotStartTime string) (*entity.Attention, error) {
				return &entity.Attention{ID: uuid.New(), DoctorID: id, SlotStartTime: slotStartTime}, nil
			},
		}
		u := NewAttentionUsecase(db, testLogger(), attentionRepo, ruleRepo(nil), doctorRepo, patientRepo, noopAuditService{})

		_, err := u.CreateAttention(context.Background(), baseReq(), &actorID)
		assert.Equal(t, ErrSlotTaken, err)
	})

	t.Run("day capacity full", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		attentionRepo := &mockAttentionRepo{
			countActiveForDayFn: func(id uuid.UUID, date time.Time) (int64, error) {
				return 2, nil
			},
		}
		u := NewAttentionUsecase(db, testLogger(), attentionRepo, ruleRepo(intPtr(2)), doctorRepo, patientRepo, noopAuditService{})

		_, err := u.CreateAttention(context.Background(), baseReq(), &actorID)
		assert.Equal(t, ErrDayCapacityFull, err)
	})

	t.Run("capacity below cap books fine", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		attentionRepo := &mockAttentionRepo{
			countActiveForDayFn: func(id uuid.UUID, date time.Time) (int64, error) {
				return 1, nil
			},
		}
		u := NewAttentionUsecase(db, testLogger(), attentionRepo, ruleRepo(intPtr(2)), doctorRepo, patientRepo, noopAuditService{})

		_, err := u.CreateAttention(context.Background(), baseReq(), &actorID)
		assert.NoError(t, err)
	})

	t.Run("unknown patient", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		u := NewAttentionUsecase(db, testLogger(), &mockAttentionRepo{}, ruleRepo(nil), doctorRepo, &mockPatientProfileRepo{}, noopAuditService{})

		_, err := u.CreateAttention(context.Background(), baseReq(), &actorID)
		assert.Equal(t, ErrPatientNotFound, err)
	})
}

func TestUpdateAttention(t *testing.T) {
	actorID := uuid.New()
	attentionID := uuid.New()

	existing := func(status entity.AttentionStatus) *entity.Attention {
		return &entity.Attention{
			ID:            attentionID,
			PatientID:     uuid.New(),
			DoctorID:      uuid.New(),
			AttentionDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			SlotStartTime: "09:30",
			Status:        status,
		}
	}

	t.Run("complete a scheduled attention", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		diagnosis := "All clear"
		attentionRepo := &mockAttentionRepo{
			findByIDFn: func(id uuid.UUID) (*entity.Attention, error) {
				return existing(entity.AttentionStatusScheduled), nil
			},
		}
		u := NewAttentionUsecase(db, testLogger(), attentionRepo, &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, &mockPatientProfileRepo{}, noopAuditService{})

		resp, err := u.UpdateAttention(context.Background(), attentionID, &dto.UpdateAttentionRequest{
			Status:    "completed",
			Diagnosis: &diagnosis,
		}, &actorID)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, "All clear", resp.Diagnosis)
	})

	t.Run("terminal status is frozen", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		attentionRepo := &mockAttentionRepo{
			findByIDFn: func(id uuid.UUID) (*entity.Attention, error) {
				return existing(entity.AttentionStatusCancelled), nil
			},
		}
		u := NewAttentionUsecase(db, testLogger(), attentionRepo, &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, &mockPatientProfileRepo{}, noopAuditService{})

		_, err := u.UpdateAttention(context.Background(), attentionID, &dto.UpdateAttentionRequest{Status: "scheduled"}, &actorID)
		assert.Equal(t, ErrInvalidStatusChange, err)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		u := NewAttentionUsecase(db, testLogger(), &mockAttentionRepo{}, &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, &mockPatientProfileRepo{}, noopAuditService{})

		_, err := u.UpdateAttention(context.Background(), attentionID, &dto.UpdateAttentionRequest{Status: "completed"}, &actorID)
		assert.Equal(t, ErrAttentionNotFound, err)
	})
}

func TestDeleteAttention(t *testing.T) {
	actorID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		attentionRepo := &mockAttentionRepo{
			deleteFn: func(id uuid.UUID) (int64, error) { return 0, nil },
		}
		u := NewAttentionUsecase(db, testLogger(), attentionRepo, &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, &mockPatientProfileRepo{}, noopAuditService{})

		err := u.DeleteAttention(context.Background(), uuid.New(), &actorID)
		assert.Equal(t, ErrAttentionNotFound, err)
	})

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		u := NewAttentionUsecase(db, testLogger(), &mockAttentionRepo{}, &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, &mockPatientProfileRepo{}, noopAuditService{})

		err := u.DeleteAttention(context.Background(), uuid.New(), &actorID)
		assert.NoError(t, err)
	})
}
