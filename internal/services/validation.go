package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/repos"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/requestdata"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/sse"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/txn"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type ValidationService interface {
	Validate(ctx context.Context, userCompetencyID uuid.UUID, achievedLevel int, notes string) (*types.UserCompetency, error)
	ValidateActivity(ctx context.Context, activityID uuid.UUID, achievedLevel int, notes string) (*types.DevelopmentActivity, error)
}

type validationService struct {
	runner             txn.Runner
	log                *logger.Logger
	userCompetencyRepo repos.UserCompetencyRepo
	activityRepo       repos.DevelopmentActivityRepo
	notifier           Notifier
}

func NewValidationService(
	runner txn.Runner,
	baseLog *logger.Logger,
	userCompetencyRepo repos.UserCompetencyRepo,
	activityRepo repos.DevelopmentActivityRepo,
	notifier Notifier,
) ValidationService {
	return &validationService{
		runner:             runner,
		log:                baseLog.With("service", "ValidationService"),
		userCompetencyRepo: userCompetencyRepo,
		activityRepo:       activityRepo,
		notifier:           notifier,
	}
}

// Validate records an achieved level on an assignment and appends a
// validation-audit activity. Re-validating at the current level is a status
// no-op but still appends an audit record: the history is append-only.
func (s *validationService) Validate(ctx context.Context, userCompetencyID uuid.UUID, achievedLevel int, notes string) (*types.UserCompetency, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if rd.Role == requestdata.RoleTrainee {
		return nil, apperr.Forbidden("trainees may not validate")
	}
	if userCompetencyID == uuid.Nil {
		return nil, apperr.Validation("no assignment selected")
	}
	if achievedLevel < types.LevelMin || achievedLevel > types.LevelMax {
		return nil, apperr.Validation("achieved level must be between %d and %d", types.LevelMin, types.LevelMax)
	}
	uc, err := s.userCompetencyRepo.GetByID(ctx, nil, userCompetencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "load assignment")
	}
	if uc == nil {
		return nil, apperr.NotFound("assignment %s", userCompetencyID)
	}

	now := time.Now()
	status := types.DeriveUserCompetencyStatus(achievedLevel, uc.TargetLevel)

	err = s.runner.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.userCompetencyRepo.UpdateFields(ctx, tx, uc.ID, map[string]interface{}{
			"current_level":        achievedLevel,
			"status":               status,
			"last_assessment_date": now,
		}); err != nil {
			return err
		}
		audit := &types.DevelopmentActivity{
			ID:           uuid.New(),
			Type:         types.ActivityValidationAudit,
			TraineeID:    uc.UserID,
			CoachID:      rd.UserID,
			AssignedBy:   rd.UserID,
			CompetencyID: uc.CompetencyID,
			TargetLevel:  uc.TargetLevel,
			Status:       types.ActivityValidated,
			Objectives:   notes,
			ValidatedAt:  &now,
			ValidatedBy:  &rd.UserID,
		}
		_, err := s.activityRepo.Create(ctx, tx, []*types.DevelopmentActivity{audit})
		return err
	})
	if err != nil {
		return nil, apperr.Dependency(err, "record validation")
	}

	uc.CurrentLevel = achievedLevel
	uc.Status = status
	uc.LastAssessmentDate = &now

	s.notifier.Notify(ctx, uc.UserID, sse.SSEEventActivityValidated, map[string]any{
		"user_competency_id": uc.ID,
		"competency_id":      uc.CompetencyID,
		"current_level":      achievedLevel,
		"status":             status,
	})
	return uc, nil
}

// ValidateActivity is the coach-initiated completed -> validated transition,
// the sole coaching path that writes back to the owning assignment.
func (s *validationService) ValidateActivity(ctx context.Context, activityID uuid.UUID, achievedLevel int, notes string) (*types.DevelopmentActivity, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if activityID == uuid.Nil {
		return nil, apperr.Validation("no activity selected")
	}
	if achievedLevel < types.LevelMin || achievedLevel > types.LevelMax {
		return nil, apperr.Validation("achieved level must be between %d and %d", types.LevelMin, types.LevelMax)
	}
	activity, err := s.activityRepo.GetByID(ctx, nil, activityID)
	if err != nil {
		return nil, apperr.Dependency(err, "load activity")
	}
	if activity == nil {
		return nil, apperr.NotFound("activity %s", activityID)
	}
	if rd.UserID != activity.CoachID && rd.Role != requestdata.RoleAssessor && rd.Role != requestdata.RoleAdmin {
		return nil, apperr.Forbidden("only the coach or an assessor may validate")
	}
	if !types.CanTransitionActivity(activity.Status, types.ActivityValidated) {
		return nil, apperr.Conflict("activity is %s, cannot validate", activity.Status)
	}

	uc, err := s.userCompetencyRepo.GetByUserAndCompetency(ctx, nil, activity.TraineeID, activity.CompetencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "load owning assignment")
	}
	if uc == nil {
		return nil, apperr.NotFound("assignment for trainee %s competency %s", activity.TraineeID, activity.CompetencyID)
	}

	now := time.Now()
	status := types.DeriveUserCompetencyStatus(achievedLevel, uc.TargetLevel)

	err = s.runner.InTx(ctx, func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":       types.ActivityValidated,
			"validated_at": now,
			"validated_by": rd.UserID,
		}
		if notes != "" {
			updates["success_criteria"] = notes
		}
		if err := s.activityRepo.UpdateFields(ctx, tx, activity.ID, updates); err != nil {
			return err
		}
		return s.userCompetencyRepo.UpdateFields(ctx, tx, uc.ID, map[string]interface{}{
			"current_level":        achievedLevel,
			"status":               status,
			"last_assessment_date": now,
		})
	})
	if err != nil {
		return nil, apperr.Dependency(err, "validate activity")
	}

	activity.Status = types.ActivityValidated
	activity.ValidatedAt = &now
	activity.ValidatedBy = &rd.UserID

	s.notifier.Notify(ctx, activity.TraineeID, sse.SSEEventActivityValidated, map[string]any{
		"activity_id":   activity.ID,
		"competency_id": activity.CompetencyID,
		"current_level": achievedLevel,
		"status":        status,
	})
	return activity, nil
}
