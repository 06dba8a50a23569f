package services

import (
	"context"
	"errors"
	"strconv"
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

type AssignmentModeKind string

const (
	// AssignNeedsCoaching spawns a coaching engagement for the trainee.
	AssignNeedsCoaching AssignmentModeKind = "needs_coaching"
	// AssignAlreadyCompetent records a validation audit at the given level.
	AssignAlreadyCompetent AssignmentModeKind = "already_competent"
)

// AssignmentMode is the discriminated form of the "current level" input, so
// the coaching-vs-audit branch is decided at the API boundary rather than by
// a magic-number check inside the engine.
type AssignmentMode struct {
	Kind  AssignmentModeKind `json:"kind"`
	Level int                `json:"level,omitempty"`
}

func AssignmentModeForLevel(currentLevel int) AssignmentMode {
	if currentLevel > 0 {
		return AssignmentMode{Kind: AssignAlreadyCompetent, Level: currentLevel}
	}
	return AssignmentMode{Kind: AssignNeedsCoaching}
}

func (m AssignmentMode) currentLevel() int {
	if m.Kind == AssignAlreadyCompetent {
		return m.Level
	}
	return 0
}

type AssignCompetencyInput struct {
	CompetencyID uuid.UUID
	TargetLevel  int
	Mode         AssignmentMode
	UserIDs      []uuid.UUID
	CoachID      *uuid.UUID
	TargetDate   *time.Time
}

type AssignmentService interface {
	AssignCompetency(ctx context.Context, in AssignCompetencyInput) (*types.BatchResult[*types.UserCompetency], error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.UserCompetency, error)
	ListForCompetency(ctx context.Context, competencyID uuid.UUID) ([]*types.UserCompetency, error)
	RemoveAssignment(ctx context.Context, userCompetencyID uuid.UUID) error
}

type assignmentService struct {
	runner             txn.Runner
	log                *logger.Logger
	competencyRepo     repos.CompetencyRepo
	userCompetencyRepo repos.UserCompetencyRepo
	activityRepo       repos.DevelopmentActivityRepo
	notifier           Notifier
}

func NewAssignmentService(
	runner txn.Runner,
	baseLog *logger.Logger,
	competencyRepo repos.CompetencyRepo,
	userCompetencyRepo repos.UserCompetencyRepo,
	activityRepo repos.DevelopmentActivityRepo,
	notifier Notifier,
) AssignmentService {
	return &assignmentService{
		runner:             runner,
		log:                baseLog.With("service", "AssignmentService"),
		competencyRepo:     competencyRepo,
		userCompetencyRepo: userCompetencyRepo,
		activityRepo:       activityRepo,
		notifier:           notifier,
	}
}

// AssignCompetency assigns one competency to a batch of trainees. Users who
// already hold an assignment for the competency are skipped, not failed; one
// user's write failure never aborts the siblings. Each user's multi-write
// sequence (assignment row + branch activity) commits as one transaction.
func (s *assignmentService) AssignCompetency(ctx context.Context, in AssignCompetencyInput) (*types.BatchResult[*types.UserCompetency], error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if len(in.UserIDs) == 0 {
		return nil, apperr.Validation("no users selected")
	}
	if in.CompetencyID == uuid.Nil {
		return nil, apperr.Validation("no competency selected")
	}
	if in.TargetLevel < types.LevelMin || in.TargetLevel > types.LevelMax {
		return nil, apperr.Validation("target level must be between %d and %d", types.LevelMin, types.LevelMax)
	}
	switch in.Mode.Kind {
	case AssignNeedsCoaching:
	case AssignAlreadyCompetent:
		if in.Mode.Level < types.LevelMin || in.Mode.Level > types.LevelMax {
			return nil, apperr.Validation("current level must be between %d and %d", types.LevelMin, types.LevelMax)
		}
	default:
		return nil, apperr.Validation("unknown assignment mode %q", in.Mode.Kind)
	}

	competency, err := s.competencyRepo.GetByID(ctx, nil, in.CompetencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "load competency")
	}
	if competency == nil || !competency.IsActive {
		return nil, apperr.NotFound("competency %s", in.CompetencyID)
	}

	coachID := competency.OwnerID
	if in.CoachID != nil && *in.CoachID != uuid.Nil {
		coachID = *in.CoachID
	}

	result := &types.BatchResult[*types.UserCompetency]{}
	for _, userID := range in.UserIDs {
		if userID == uuid.Nil {
			result.AddSkip(userID, "empty user id")
			continue
		}
		// Fast path only; the unique index on (user_id, competency_id) is the
		// authoritative guard against the query-then-insert race.
		existing, err := s.userCompetencyRepo.GetByUserAndCompetency(ctx, nil, userID, in.CompetencyID)
		if err != nil {
			result.AddFailure(userID, apperr.Dependency(err, "check existing assignment"))
			continue
		}
		if existing != nil {
			result.AddSkip(userID, "already assigned")
			continue
		}

		uc, err := s.assignOne(ctx, rd.UserID, userID, competency, in, coachID)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				result.AddSkip(userID, "already assigned")
				continue
			}
			s.log.Warn("AssignCompetency: item failed", "error", err, "user_id", userID, "competency_id", in.CompetencyID)
			result.AddFailure(userID, err)
			continue
		}
		result.Succeeded = append(result.Succeeded, uc)
		s.notifier.Notify(ctx, userID, sse.SSEEventCompetencyAssigned, map[string]any{
			"user_competency_id": uc.ID,
			"competency_id":      competency.ID,
			"competency_name":    competency.Name,
			"target_level":       uc.TargetLevel,
		})
	}
	return result, nil
}

func (s *assignmentService) assignOne(ctx context.Context, assignedBy, userID uuid.UUID, competency *types.Competency, in AssignCompetencyInput, coachID uuid.UUID) (*types.UserCompetency, error) {
	currentLevel := in.Mode.currentLevel()
	uc := &types.UserCompetency{
		ID:           uuid.New(),
		UserID:       userID,
		CompetencyID: competency.ID,
		CurrentLevel: currentLevel,
		TargetLevel:  in.TargetLevel,
		Status:       types.DeriveUserCompetencyStatus(currentLevel, in.TargetLevel),
		TargetDate:   in.TargetDate,
	}
	if currentLevel == 0 {
		uc.Status = types.UserCompetencyAssigned
	}

	err := s.runner.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.userCompetencyRepo.Create(ctx, tx, []*types.UserCompetency{uc}); err != nil {
			return err
		}
		activity := &types.DevelopmentActivity{
			ID:           uuid.New(),
			TraineeID:    userID,
			CoachID:      coachID,
			AssignedBy:   assignedBy,
			CompetencyID: competency.ID,
			TargetLevel:  in.TargetLevel,
			DueDate:      in.TargetDate,
		}
		if in.Mode.Kind == AssignAlreadyCompetent {
			// Audit trail, not a coaching engagement: the trainee is recorded
			// as already competent at the stated level.
			now := time.Now()
			activity.Type = types.ActivityValidationAudit
			activity.Status = types.ActivityValidated
			activity.ValidatedAt = &now
			activity.ValidatedBy = &assignedBy
			activity.Objectives = "Recorded as already competent at level " + strconv.Itoa(currentLevel)
		} else {
			activity.Type = types.ActivityCoaching
			activity.Status = types.ActivityPending
			activity.Objectives = competency.RubricForLevel(in.TargetLevel)
		}
		if _, err := s.activityRepo.Create(ctx, tx, []*types.DevelopmentActivity{activity}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc, nil
}

func (s *assignmentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.UserCompetency, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if userID == uuid.Nil {
		userID = rd.UserID
	}
	rows, err := s.userCompetencyRepo.ListByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, apperr.Dependency(err, "list user competencies")
	}
	return rows, nil
}

func (s *assignmentService) ListForCompetency(ctx context.Context, competencyID uuid.UUID) ([]*types.UserCompetency, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.userCompetencyRepo.ListByCompetencyID(ctx, nil, competencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "list competency assignments")
	}
	return rows, nil
}

// RemoveAssignment is the explicit removal path; assignments are never
// hard-deleted in the normal flow.
func (s *assignmentService) RemoveAssignment(ctx context.Context, userCompetencyID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apperr.ErrUnauthorized
	}
	if rd.Role != requestdata.RoleAdmin {
		return apperr.Forbidden("only admins may remove assignments")
	}
	uc, err := s.userCompetencyRepo.GetByID(ctx, nil, userCompetencyID)
	if err != nil {
		return apperr.Dependency(err, "load assignment")
	}
	if uc == nil {
		return apperr.NotFound("assignment %s", userCompetencyID)
	}
	if err := s.userCompetencyRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{userCompetencyID}); err != nil {
		return apperr.Dependency(err, "remove assignment")
	}
	return nil
}
