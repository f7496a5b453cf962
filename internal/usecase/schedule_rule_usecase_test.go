package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(n int) *int { return &n }

func fixedClock() schedule.Clock {
	return schedule.FixedClock{Instant: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)}
}

func activeDoctor(id uuid.UUID) *entity.DoctorProfile {
	return &entity.DoctorProfile{UserID: id, LicenseNumber: "LIC-1234", Specialization: "Cardiology"}
}

func TestCreateDatedRule(t *testing.T) {
	doctorID := uuid.New()
	actorID := uuid.New()

	baseReq := func() *dto.CreateDatedRuleRequest {
		return &dto.CreateDatedRuleRequest{
			DoctorID:            doctorID,
			RuleDate:            "2026-09-10",
			StartTime:           "09:00",
			EndTime:             "12:00",
			SlotDurationMinutes: 30,
		}
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ruleRepo := &mockScheduleRuleRepo{
			createFn: func(rule *entity.ScheduleRule) error {
				rule.ID = 7
				return nil
			},
		}
		doctorRepo := &mockDoctorProfileRepo{
			findByUserIDFn: func(id uuid.UUID) (*entity.DoctorProfile, error) {
				return activeDoctor(id), nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, doctorRepo, noopAuditService{})

		resp, err := u.CreateDatedRule(context.Background(), baseReq(), &actorID)
		require.NoError(t, err)
		assert.Equal(t, 7, resp.ID)
		assert.Equal(t, "dated", resp.Kind)
		require.NotNil(t, resp.RuleDate)
		assert.Equal(t, "2026-09-10", *resp.RuleDate)
		assert.True(t, resp.Active)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid date format", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, noopAuditService{})

		req := baseReq()
		req.RuleDate = "10-09-2026"
		_, err := u.CreateDatedRule(context.Background(), req, &actorID)
		assert.Equal(t, ErrInvalidRuleDate, err)
	})

	t.Run("date in the past", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, noopAuditService{})

		req := baseReq()
		req.RuleDate = "2026-08-31"
		_, err := u.CreateDatedRule(context.Background(), req, &actorID)
		assert.Equal(t, ErrRuleDateInPast, err)
	})

	t.Run("today is allowed", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		doctorRepo := &mockDoctorProfileRepo{
			findByUserIDFn: func(id uuid.UUID) (*entity.DoctorProfile, error) {
				return activeDoctor(id), nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, doctorRepo, noopAuditService{})

		req := baseReq()
		req.RuleDate = "2026-09-01"
		_, err := u.CreateDatedRule(context.Background(), req, &actorID)
		assert.NoError(t, err)
	})

	t.Run("end not after start", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, noopAuditService{})

		req := baseReq()
		req.StartTime = "12:00"
		req.EndTime = "09:00"
		_, err := u.CreateDatedRule(context.Background(), req, &actorID)
		assert.Equal(t, schedule.ErrEndNotAfterStart, err)
	})

	t.Run("slot duration out of bounds", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, noopAuditService{})

		req := baseReq()
		req.SlotDurationMinutes = 180
		_, err := u.CreateDatedRule(context.Background(), req, &actorID)
		assert.Equal(t, schedule.ErrInvalidSlotDuration, err)
	})

	t.Run("doctor not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.CreateDatedRule(context.Background(), baseReq(), &actorID)
		assert.Equal(t, ErrDoctorNotFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("day already taken", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			findActiveDatedFn: func(id uuid.UUID, date time.Time) (*entity.ScheduleRule, error) {
				return &entity.ScheduleRule{ID: 3, DoctorID: id, Kind: entity.RuleKindDated}, nil
			},
		}
		doctorRepo := &mockDoctorProfileRepo{
			findByUserIDFn: func(id uuid.UUID) (*entity.DoctorProfile, error) {
				return activeDoctor(id), nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, doctorRepo, noopAuditService{})

		_, err := u.CreateDatedRule(context.Background(), baseReq(), &actorID)
		assert.Equal(t, ErrRuleConflict, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateRecurringRule(t *testing.T) {
	doctorID := uuid.New()
	actorID := uuid.New()

	baseReq := func() *dto.CreateRecurringRuleRequest {
		return &dto.CreateRecurringRuleRequest{
			DoctorID:            doctorID,
			Weekday:             1,
			StartTime:           "14:00",
			EndTime:             "17:00",
			SlotDurationMinutes: 20,
			MaxSlots:            intPtr(5),
		}
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ruleRepo := &mockScheduleRuleRepo{
			createFn: func(rule *entity.ScheduleRule) error {
				rule.ID = 11
				return nil
			},
		}
		doctorRepo := &mockDoctorProfileRepo{
			findByUserIDFn: func(id uuid.UUID) (*entity.DoctorProfile, error) {
				return activeDoctor(id), nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, doctorRepo, noopAuditService{})

		resp, err := u.CreateRecurringRule(context.Background(), baseReq(), &actorID)
		require.NoError(t, err)
		assert.Equal(t, 11, resp.ID)
		assert.Equal(t, "recurring", resp.Kind)
		require.NotNil(t, resp.Weekday)
		assert.Equal(t, 1, *resp.Weekday)
		assert.Nil(t, resp.RuleDate)
	})

	t.Run("weekday already taken", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			findActiveRecurringFn: func(id uuid.UUID, weekday int) (*entity.ScheduleRule, error) {
				return &entity.ScheduleRule{ID: 2, DoctorID: id, Kind: entity.RuleKindRecurring, Weekday: intPtr(weekday)}, nil
			},
		}
		doctorRepo := &mockDoctorProfileRepo{
			findByUserIDFn: func(id uuid.UUID) (*entity.DoctorProfile, error) {
				return activeDoctor(id), nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, doctorRepo, noopAuditService{})

		_, err := u.CreateRecurringRule(context.Background(), baseReq(), &actorID)
		assert.Equal(t, ErrRuleConflict, err)
	})
}

func TestUpdateRule(t *testing.T) {
	doctorID := uuid.New()
	actorID := uuid.New()

	datedRule := func() *entity.ScheduleRule {
		date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		return &entity.ScheduleRule{
			ID:                  5,
			DoctorID:            doctorID,
			Kind:                entity.RuleKindDated,
			RuleDate:            &date,
			StartTime:           "09:00",
			EndTime:             "12:00",
			SlotDurationMinutes: 30,
			Active:              true,
		}
	}

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.UpdateRule(context.Background(), 99, &dto.UpdateRuleRequest{StartTime: "10:00"}, &actorID)
		assert.Equal(t, ErrRuleNotFound, err)
	})

	t.Run("move to occupied date", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDFn: func(id int) (*entity.ScheduleRule, error) {
				return datedRule(), nil
			},
			findActiveDatedFn: func(id uuid.UUID, date time.Time) (*entity.ScheduleRule, error) {
				// Another rule already owns the target date.
				return &entity.ScheduleRule{ID: 42, DoctorID: id, Kind: entity.RuleKindDated}, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.UpdateRule(context.Background(), 5, &dto.UpdateRuleRequest{RuleDate: "2026-09-15"}, &actorID)
		assert.Equal(t, ErrRuleConflict, err)
	})

	t.Run("conflict check ignores the rule itself", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDFn: func(id int) (*entity.ScheduleRule, error) {
				return datedRule(), nil
			},
			findActiveDatedFn: func(id uuid.UUID, date time.Time) (*entity.ScheduleRule, error) {
				return datedRule(), nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		resp, err := u.UpdateRule(context.Background(), 5, &dto.UpdateRuleRequest{StartTime: "10:00"}, &actorID)
		require.NoError(t, err)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("zero max slots clears the cap", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDFn: func(id int) (*entity.ScheduleRule, error) {
				rule := datedRule()
				rule.MaxSlots = intPtr(4)
				return rule, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		resp, err := u.UpdateRule(context.Background(), 5, &dto.UpdateRuleRequest{MaxSlots: intPtr(0)}, &actorID)
		require.NoError(t, err)
		assert.Nil(t, resp.MaxSlots)
	})

	t.Run("rule date rejected on recurring rule", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDFn: func(id int) (*entity.ScheduleRule, error) {
				return &entity.ScheduleRule{
					ID:                  6,
					DoctorID:            doctorID,
					Kind:                entity.RuleKindRecurring,
					Weekday:             intPtr(3),
					StartTime:           "09:00",
					EndTime:             "12:00",
					SlotDurationMinutes: 30,
					Active:              true,
				}, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.UpdateRule(context.Background(), 6, &dto.UpdateRuleRequest{RuleDate: "2026-09-15"}, &actorID)
		assert.Equal(t, ErrInvalidRuleDate, err)
	})

	t.Run("window revalidated after patch", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDFn: func(id int) (*entity.ScheduleRule, error) {
				return datedRule(), nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.UpdateRule(context.Background(), 5, &dto.UpdateRuleRequest{EndTime: "08:00"}, &actorID)
		assert.Equal(t, schedule.ErrEndNotAfterStart, err)
	})
}

func TestToggleActive(t *testing.T) {
	doctorID := uuid.New()
	actorID := uuid.New()

	t.Run("deactivate", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDFn: func(id int) (*entity.ScheduleRule, error) {
				return &entity.ScheduleRule{
					ID:                  8,
					DoctorID:            doctorID,
					Kind:                entity.RuleKindRecurring,
					Weekday:             intPtr(2),
					StartTime:           "09:00",
					EndTime:             "12:00",
					SlotDurationMinutes: 30,
					Active:              true,
				}, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		resp, err := u.ToggleActive(context.Background(), 8, &actorID)
		require.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("toggling twice restores the original state", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectCommit()

		// Shared instance so the second call sees the first call's flip.
		rule := &entity.ScheduleRule{
			ID:                  8,
			DoctorID:            doctorID,
			Kind:                entity.RuleKindRecurring,
			Weekday:             intPtr(2),
			StartTime:           "09:00",
			EndTime:             "12:00",
			SlotDurationMinutes: 30,
			Active:              true,
		}
		ruleRepo := &mockScheduleRuleRepo{
			findByIDFn: func(id int) (*entity.ScheduleRule, error) {
				return rule, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		first, err := u.ToggleActive(context.Background(), 8, &actorID)
		require.NoError(t, err)
		assert.False(t, first.Active)

		second, err := u.ToggleActive(context.Background(), 8, &actorID)
		require.NoError(t, err)
		assert.True(t, second.Active)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reactivate into occupied weekday", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDFn: func(id int) (*entity.ScheduleRule, error) {
				return &entity.ScheduleRule{
					ID:                  8,
					DoctorID:            doctorID,
					Kind:                entity.RuleKindRecurring,
					Weekday:             intPtr(2),
					StartTime:           "09:00",
					EndTime:             "12:00",
					SlotDurationMinutes: 30,
					Active:              false,
				}, nil
			},
			findActiveRecurringFn: func(id uuid.UUID, weekday int) (*entity.ScheduleRule, error) {
				return &entity.ScheduleRule{ID: 21, DoctorID: id, Kind: entity.RuleKindRecurring, Weekday: intPtr(weekday)}, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.ToggleActive(context.Background(), 8, &actorID)
		assert.Equal(t, ErrRuleConflict, err)
	})
}

func TestDeleteRule(t *testing.T) {
	actorID := uuid.New()

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, noopAuditService{})

		err := u.DeleteRule(context.Background(), 4, &actorID)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			deleteFn: func(id int) (int64, error) { return 0, nil },
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		err := u.DeleteRule(context.Background(), 4, &actorID)
		assert.Equal(t, ErrRuleNotFound, err)
	})
}

func TestRestoreRule(t *testing.T) {
	doctorID := uuid.New()
	actorID := uuid.New()

	deletedRule := func() *entity.ScheduleRule {
		date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
		return &entity.ScheduleRule{
			ID:                  9,
			DoctorID:            doctorID,
			Kind:                entity.RuleKindDated,
			RuleDate:            &date,
			StartTime:           "09:00",
			EndTime:             "12:00",
			SlotDurationMinutes: 30,
			Active:              true,
			DeletedAt:           gorm.DeletedAt{Time: time.Now(), Valid: true},
		}
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDUnscopedFn: func(id int) (*entity.ScheduleRule, error) {
				return deletedRule(), nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		resp, err := u.RestoreRule(context.Background(), 9, &actorID)
		require.NoError(t, err)
		assert.Equal(t, 9, resp.ID)
	})

	t.Run("not deleted", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDUnscopedFn: func(id int) (*entity.ScheduleRule, error) {
				rule := deletedRule()
				rule.DeletedAt = gorm.DeletedAt{}
				return rule, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.RestoreRule(context.Background(), 9, &actorID)
		assert.Equal(t, ErrRuleNotDeleted, err)
	})

	t.Run("day taken while deleted", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ruleRepo := &mockScheduleRuleRepo{
			findByIDUnscopedFn: func(id int) (*entity.ScheduleRule, error) {
				return deletedRule(), nil
			},
			findActiveDatedFn: func(id uuid.UUID, date time.Time) (*entity.ScheduleRule, error) {
				return &entity.ScheduleRule{ID: 30, DoctorID: id, Kind: entity.RuleKindDated}, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.RestoreRule(context.Background(), 9, &actorID)
		assert.Equal(t, ErrRuleConflict, err)
	})
}

func TestResolveAvailability(t *testing.T) {
	doctorID := uuid.New()

	doctorRepo := &mockDoctorProfileRepo{
		findByUserIDFn: func(id uuid.UUID) (*entity.DoctorProfile, error) {
			return activeDoctor(id), nil
		},
	}

	t.Run("dated rule beats recurring", func(t *testing.T) {
		db, _ := newTestDB(t)

		date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		ruleRepo := &mockScheduleRuleRepo{
			findForDateFn: func(id uuid.UUID, day time.Time, weekday int) ([]entity.ScheduleRule, error) {
				return []entity.ScheduleRule{
					{
						ID: 1, DoctorID: id, Kind: entity.RuleKindDated, RuleDate: &date,
						StartTime: "09:00", EndTime: "10:00", SlotDurationMinutes: 30, Active: true,
					},
					{
						ID: 2, DoctorID: id, Kind: entity.RuleKindRecurring, Weekday: intPtr(weekday),
						StartTime: "14:00", EndTime: "18:00", SlotDurationMinutes: 30, Active: true,
					},
				}, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, doctorRepo, noopAuditService{})

		resp, err := u.ResolveAvailability(context.Background(), doctorID, "2026-09-07")
		require.NoError(t, err)
		require.NotNil(t, resp.Rule)
		assert.Equal(t, "dated", resp.Rule.Kind)
		assert.Equal(t, 2, resp.TotalSlots)
		assert.Equal(t, []schedule.Slot{
			{StartTime: "09:00", EndTime: "09:30"},
			{StartTime: "09:30", EndTime: "10:00"},
		}, resp.Slots)
	})

	t.Run("rule stored with seconds still expands", func(t *testing.T) {
		db, _ := newTestDB(t)

		// Postgres renders TIME columns as HH:MM:SS, so a persisted rule
		// reads back with seconds attached.
		ruleRepo := &mockScheduleRuleRepo{
			findForDateFn: func(id uuid.UUID, day time.Time, weekday int) ([]entity.ScheduleRule, error) {
				return []entity.ScheduleRule{
					{
						ID: 4, DoctorID: id, Kind: entity.RuleKindRecurring, Weekday: intPtr(weekday),
						StartTime: "09:00:00", EndTime: "10:00:00", SlotDurationMinutes: 30, Active: true,
					},
				}, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, doctorRepo, noopAuditService{})

		resp, err := u.ResolveAvailability(context.Background(), doctorID, "2026-09-07")
		require.NoError(t, err)
		assert.Equal(t, 2, resp.TotalSlots)
		assert.Equal(t, []schedule.Slot{
			{StartTime: "09:00", EndTime: "09:30"},
			{StartTime: "09:30", EndTime: "10:00"},
		}, resp.Slots)
	})

	t.Run("no rule resolves to empty day", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, doctorRepo, noopAuditService{})

		resp, err := u.ResolveAvailability(context.Background(), doctorID, "2026-09-07")
		require.NoError(t, err)
		assert.Nil(t, resp.Rule)
		assert.NotNil(t, resp.Slots)
		assert.Len(t, resp.Slots, 0)
		assert.Equal(t, 0, resp.AvailableCapacity)
	})

	t.Run("max slots caps capacity but not the slot list", func(t *testing.T) {
		db, _ := newTestDB(t)

		ruleRepo := &mockScheduleRuleRepo{
			findForDateFn: func(id uuid.UUID, day time.Time, weekday int) ([]entity.ScheduleRule, error) {
				return []entity.ScheduleRule{
					{
						ID: 3, DoctorID: id, Kind: entity.RuleKindRecurring, Weekday: intPtr(weekday),
						StartTime: "09:00", EndTime: "11:00", SlotDurationMinutes: 30,
						MaxSlots: intPtr(2), Active: true,
					},
				}, nil
			},
		}
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), ruleRepo, doctorRepo, noopAuditService{})

		resp, err := u.ResolveAvailability(context.Background(), doctorID, "2026-09-07")
		require.NoError(t, err)
		assert.Equal(t, 4, resp.TotalSlots)
		assert.Len(t, resp.Slots, 4)
		assert.Equal(t, 2, resp.AvailableCapacity)
	})

	t.Run("invalid date", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, doctorRepo, noopAuditService{})

		_, err := u.ResolveAvailability(context.Background(), doctorID, "07/09/2026")
		assert.Equal(t, ErrInvalidRuleDate, err)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewScheduleRuleUsecase(db, testLogger(), fixedClock(), &mockScheduleRuleRepo{}, &mockDoctorProfileRepo{}, noopAuditService{})

		_, err := u.ResolveAvailability(context.Background(), doctorID, "2026-09-07")
		assert.Equal(t, ErrDoctorNotFound, err)
	})
}
