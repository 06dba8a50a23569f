package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/repos"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/requestdata"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/sse"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/txn"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

// CriteriaResults maps a rubric level (1..target) to its outcome. A nil value
// means the level was not assessed.
type CriteriaResults map[int]*bool

type AssessItem struct {
	UserCompetencyID uuid.UUID       `json:"user_competency_id"`
	Criteria         CriteriaResults `json:"criteria"`
	Notes            string          `json:"notes,omitempty"`
}

type AssessmentService interface {
	Assess(ctx context.Context, item AssessItem) (*types.Assessment, error)
	AssessBatch(ctx context.Context, items []AssessItem) (*types.BatchResult[*types.Assessment], error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Assessment, error)
}

// ComputeAchievedLevel applies the monotonic staircase rule: the achieved
// level is the highest L with all of 1..L passed, stopping at the first level
// failed or left unassessed. A later pass never compensates for an earlier
// break, because each level builds on the ones below it. Floor of 1.
func ComputeAchievedLevel(criteria CriteriaResults, targetLevel int) int {
	achieved := 0
	for level := 1; level <= targetLevel; level++ {
		v, ok := criteria[level]
		if !ok || v == nil || !*v {
			break
		}
		achieved = level
	}
	if achieved < 1 {
		achieved = 1
	}
	return achieved
}

type assessmentService struct {
	runner             txn.Runner
	log                *logger.Logger
	userCompetencyRepo repos.UserCompetencyRepo
	assessmentRepo     repos.AssessmentRepo
	activityRepo       repos.DevelopmentActivityRepo
	notifier           Notifier
}

func NewAssessmentService(
	runner txn.Runner,
	baseLog *logger.Logger,
	userCompetencyRepo repos.UserCompetencyRepo,
	assessmentRepo repos.AssessmentRepo,
	activityRepo repos.DevelopmentActivityRepo,
	notifier Notifier,
) AssessmentService {
	return &assessmentService{
		runner:             runner,
		log:                baseLog.With("service", "AssessmentService"),
		userCompetencyRepo: userCompetencyRepo,
		assessmentRepo:     assessmentRepo,
		activityRepo:       activityRepo,
		notifier:           notifier,
	}
}

// Assess evaluates one competency assignment and persists a single assessment
// record for the event. The assignment's level, status and assessment date
// are updated, and any coaching activity the trainee marked ready is
// confirmed as validated in the same transaction.
func (s *assessmentService) Assess(ctx context.Context, item AssessItem) (*types.Assessment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if rd.Role == requestdata.RoleTrainee {
		return nil, apperr.Forbidden("trainees may not assess")
	}
	if item.UserCompetencyID == uuid.Nil {
		return nil, apperr.Validation("no assignment selected")
	}

	uc, err := s.userCompetencyRepo.GetByID(ctx, nil, item.UserCompetencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "load assignment")
	}
	if uc == nil {
		return nil, apperr.NotFound("assignment %s", item.UserCompetencyID)
	}

	achieved := ComputeAchievedLevel(item.Criteria, uc.TargetLevel)
	now := time.Now()

	rawCriteria, err := json.Marshal(item.Criteria)
	if err != nil {
		return nil, apperr.Validation("criteria results not serializable: %v", err)
	}

	assessment := &types.Assessment{
		ID:              uuid.New(),
		UserID:          uc.UserID,
		CompetencyID:    uc.CompetencyID,
		AssessedBy:      rd.UserID,
		AssessmentDate:  now,
		LevelAchieved:   achieved,
		CriteriaResults: datatypes.JSON(rawCriteria),
		Notes:           item.Notes,
		Status:          types.AssessmentValidated,
	}

	err = s.runner.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.assessmentRepo.Create(ctx, tx, []*types.Assessment{assessment}); err != nil {
			return err
		}
		updates := map[string]interface{}{
			"current_level":        achieved,
			"status":               types.DeriveUserCompetencyStatus(achieved, uc.TargetLevel),
			"last_assessment_date": now,
		}
		if err := s.userCompetencyRepo.UpdateFields(ctx, tx, uc.ID, updates); err != nil {
			return err
		}
		// Confirm any coaching engagement the trainee marked ready.
		activities, err := s.activityRepo.ListByTraineeAndCompetency(ctx, tx, uc.UserID, uc.CompetencyID)
		if err != nil {
			return err
		}
		for _, a := range activities {
			if a.Type != types.ActivityCoaching || a.Status != types.ActivityCompleted {
				continue
			}
			if err := s.activityRepo.UpdateFields(ctx, tx, a.ID, map[string]interface{}{
				"status":       types.ActivityValidated,
				"validated_at": now,
				"validated_by": rd.UserID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Dependency(err, "persist assessment")
	}

	s.notifier.Notify(ctx, uc.UserID, sse.SSEEventAssessmentRecorded, map[string]any{
		"assessment_id":  assessment.ID,
		"competency_id":  uc.CompetencyID,
		"level_achieved": achieved,
	})
	return assessment, nil
}

// AssessBatch processes each competency independently; one item's failure to
// save never rolls back the others.
func (s *assessmentService) AssessBatch(ctx context.Context, items []AssessItem) (*types.BatchResult[*types.Assessment], error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, apperr.Validation("no competencies selected")
	}
	result := &types.BatchResult[*types.Assessment]{}
	for _, item := range items {
		assessment, err := s.Assess(ctx, item)
		if err != nil {
			if apperr.IsConflict(err) {
				result.AddSkip(item.UserCompetencyID, err.Error())
				continue
			}
			s.log.Warn("AssessBatch: item failed", "error", err, "user_competency_id", item.UserCompetencyID)
			result.AddFailure(item.UserCompetencyID, err)
			continue
		}
		result.Succeeded = append(result.Succeeded, assessment)
	}
	return result, nil
}

func (s *assessmentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Assessment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if userID == uuid.Nil {
		userID = rd.UserID
	}
	rows, err := s.assessmentRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Dependency(err, "list assessments")
	}
	return rows, nil
}
