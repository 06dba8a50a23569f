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

type CoachingService interface {
	StartActivity(ctx context.Context, activityID uuid.UUID) (*types.DevelopmentActivity, error)
	MarkReady(ctx context.Context, activityID uuid.UUID, comment string) (*types.DevelopmentActivity, error)
	CancelActivity(ctx context.Context, activityID uuid.UUID, reason string) (*types.DevelopmentActivity, error)
	AddFeedback(ctx context.Context, activityID uuid.UUID, feedbackType types.FeedbackType, content string) (*types.ActivityFeedback, error)
	ListForTrainee(ctx context.Context, traineeID uuid.UUID) ([]*types.DevelopmentActivity, error)
	ListForCoach(ctx context.Context, statuses []types.ActivityStatus) ([]*types.DevelopmentActivity, error)
	ListFeedback(ctx context.Context, activityID uuid.UUID) ([]*types.ActivityFeedback, error)
}

type coachingService struct {
	runner       txn.Runner
	log          *logger.Logger
	activityRepo repos.DevelopmentActivityRepo
	feedbackRepo repos.ActivityFeedbackRepo
	notifier     Notifier
}

func NewCoachingService(
	runner txn.Runner,
	baseLog *logger.Logger,
	activityRepo repos.DevelopmentActivityRepo,
	feedbackRepo repos.ActivityFeedbackRepo,
	notifier Notifier,
) CoachingService {
	return &coachingService{
		runner:       runner,
		log:          baseLog.With("service", "CoachingService"),
		activityRepo: activityRepo,
		feedbackRepo: feedbackRepo,
		notifier:     notifier,
	}
}

func (s *coachingService) loadActivity(ctx context.Context, activityID uuid.UUID) (*types.DevelopmentActivity, *requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, nil, apperr.ErrUnauthorized
	}
	if activityID == uuid.Nil {
		return nil, nil, apperr.Validation("no activity selected")
	}
	activity, err := s.activityRepo.GetByID(ctx, nil, activityID)
	if err != nil {
		return nil, nil, apperr.Dependency(err, "load activity")
	}
	if activity == nil {
		return nil, nil, apperr.NotFound("activity %s", activityID)
	}
	return activity, rd, nil
}

func (s *coachingService) StartActivity(ctx context.Context, activityID uuid.UUID) (*types.DevelopmentActivity, error) {
	activity, rd, err := s.loadActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if rd.UserID != activity.TraineeID && rd.UserID != activity.CoachID {
		return nil, apperr.Forbidden("only the trainee or coach may start this activity")
	}
	if !types.CanTransitionActivity(activity.Status, types.ActivityInProgress) {
		return nil, apperr.Conflict("activity is %s, cannot start", activity.Status)
	}
	if err := s.activityRepo.UpdateFields(ctx, nil, activity.ID, map[string]interface{}{
		"status": types.ActivityInProgress,
	}); err != nil {
		return nil, apperr.Dependency(err, "start activity")
	}
	activity.Status = types.ActivityInProgress
	return activity, nil
}

// MarkReady is the trainee-initiated "ready for review" transition. It stamps
// completed_at and appends a milestone feedback entry in the same transaction.
func (s *coachingService) MarkReady(ctx context.Context, activityID uuid.UUID, comment string) (*types.DevelopmentActivity, error) {
	activity, rd, err := s.loadActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if rd.UserID != activity.TraineeID {
		return nil, apperr.Forbidden("only the trainee may mark the activity ready")
	}
	if !types.CanTransitionActivity(activity.Status, types.ActivityCompleted) {
		return nil, apperr.Conflict("activity is %s, cannot mark ready", activity.Status)
	}
	now := time.Now()
	content := comment
	if content == "" {
		content = "Marked ready for review"
	}
	err = s.runner.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.activityRepo.UpdateFields(ctx, tx, activity.ID, map[string]interface{}{
			"status":       types.ActivityCompleted,
			"completed_at": now,
		}); err != nil {
			return err
		}
		milestone := &types.ActivityFeedback{
			ID:           uuid.New(),
			ActivityID:   activity.ID,
			AuthorID:     rd.UserID,
			AuthorRole:   types.FeedbackRoleCoachee,
			FeedbackType: types.FeedbackMilestone,
			Content:      content,
		}
		_, err := s.feedbackRepo.Create(ctx, tx, []*types.ActivityFeedback{milestone})
		return err
	})
	if err != nil {
		return nil, apperr.Dependency(err, "mark activity ready")
	}
	activity.Status = types.ActivityCompleted
	activity.CompletedAt = &now

	s.notifier.Notify(ctx, activity.CoachID, sse.SSEEventActivityReady, map[string]any{
		"activity_id":   activity.ID,
		"trainee_id":    activity.TraineeID,
		"competency_id": activity.CompetencyID,
	})
	return activity, nil
}

func (s *coachingService) CancelActivity(ctx context.Context, activityID uuid.UUID, reason string) (*types.DevelopmentActivity, error) {
	activity, rd, err := s.loadActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if rd.UserID != activity.CoachID && rd.UserID != activity.AssignedBy && rd.Role != requestdata.RoleAdmin {
		return nil, apperr.Forbidden("only the coach, assigner or an admin may cancel")
	}
	if !types.CanTransitionActivity(activity.Status, types.ActivityCancelled) {
		return nil, apperr.Conflict("activity is %s, cannot cancel", activity.Status)
	}
	err = s.runner.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.activityRepo.UpdateFields(ctx, tx, activity.ID, map[string]interface{}{
			"status": types.ActivityCancelled,
		}); err != nil {
			return err
		}
		if reason == "" {
			return nil
		}
		entry := &types.ActivityFeedback{
			ID:           uuid.New(),
			ActivityID:   activity.ID,
			AuthorID:     rd.UserID,
			AuthorRole:   feedbackRoleFor(rd, activity),
			FeedbackType: types.FeedbackProgress,
			Content:      reason,
		}
		_, err := s.feedbackRepo.Create(ctx, tx, []*types.ActivityFeedback{entry})
		return err
	})
	if err != nil {
		return nil, apperr.Dependency(err, "cancel activity")
	}
	activity.Status = types.ActivityCancelled

	s.notifier.Notify(ctx, activity.TraineeID, sse.SSEEventActivityCancelled, map[string]any{
		"activity_id":   activity.ID,
		"competency_id": activity.CompetencyID,
	})
	return activity, nil
}

// AddFeedback appends to the activity thread. Feedback on a validated or
// cancelled activity is rejected; the thread itself is append-only.
func (s *coachingService) AddFeedback(ctx context.Context, activityID uuid.UUID, feedbackType types.FeedbackType, content string) (*types.ActivityFeedback, error) {
	activity, rd, err := s.loadActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, apperr.Validation("feedback content is required")
	}
	if activity.Status.Terminal() {
		return nil, apperr.Conflict("activity is %s, feedback thread is closed", activity.Status)
	}
	if feedbackType == "" {
		feedbackType = types.FeedbackProgress
	}
	entry := &types.ActivityFeedback{
		ID:           uuid.New(),
		ActivityID:   activity.ID,
		AuthorID:     rd.UserID,
		AuthorRole:   feedbackRoleFor(rd, activity),
		FeedbackType: feedbackType,
		Content:      content,
	}
	if _, err := s.feedbackRepo.Create(ctx, nil, []*types.ActivityFeedback{entry}); err != nil {
		return nil, apperr.Dependency(err, "append feedback")
	}

	target := activity.TraineeID
	if rd.UserID == activity.TraineeID {
		target = activity.CoachID
	}
	s.notifier.Notify(ctx, target, sse.SSEEventFeedbackAdded, map[string]any{
		"activity_id": activity.ID,
		"author_id":   rd.UserID,
	})
	return entry, nil
}

func (s *coachingService) ListForTrainee(ctx context.Context, traineeID uuid.UUID) ([]*types.DevelopmentActivity, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if traineeID == uuid.Nil {
		traineeID = rd.UserID
	}
	rows, err := s.activityRepo.ListByTraineeID(ctx, nil, traineeID)
	if err != nil {
		return nil, apperr.Dependency(err, "list trainee activities")
	}
	return rows, nil
}

func (s *coachingService) ListForCoach(ctx context.Context, statuses []types.ActivityStatus) ([]*types.DevelopmentActivity, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.activityRepo.ListByCoachID(ctx, nil, rd.UserID, statuses)
	if err != nil {
		return nil, apperr.Dependency(err, "list coach activities")
	}
	return rows, nil
}

func (s *coachingService) ListFeedback(ctx context.Context, activityID uuid.UUID) ([]*types.ActivityFeedback, error) {
	_, _, err := s.loadActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	rows, err := s.feedbackRepo.ListByActivityID(ctx, nil, activityID)
	if err != nil {
		return nil, apperr.Dependency(err, "list feedback")
	}
	return rows, nil
}

func feedbackRoleFor(rd *requestdata.RequestData, activity *types.DevelopmentActivity) types.FeedbackRole {
	switch rd.UserID {
	case activity.CoachID:
		return types.FeedbackRoleCoach
	case activity.TraineeID:
		return types.FeedbackRoleCoachee
	}
	return types.FeedbackRoleOther
}
