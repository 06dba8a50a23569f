package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/normalization"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/repos"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/requestdata"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/sse"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type ReviewService interface {
	CreateModule(ctx context.Context, title, content string, competencyID *uuid.UUID) (*types.TrainingModule, error)
	SubmitModule(ctx context.Context, moduleID uuid.UUID) (*types.TrainingModule, error)
	ApproveModule(ctx context.Context, moduleID uuid.UUID, notes string) (*types.TrainingModule, error)
	RejectModule(ctx context.Context, moduleID uuid.UUID, notes string) (*types.TrainingModule, error)
	ListByStatus(ctx context.Context, statuses []types.ModuleStatus) ([]*types.TrainingModule, error)
	ListMine(ctx context.Context) ([]*types.TrainingModule, error)
}

type reviewService struct {
	log        *logger.Logger
	moduleRepo repos.TrainingModuleRepo
	notifier   Notifier
}

func NewReviewService(baseLog *logger.Logger, moduleRepo repos.TrainingModuleRepo, notifier Notifier) ReviewService {
	return &reviewService{
		log:        baseLog.With("service", "ReviewService"),
		moduleRepo: moduleRepo,
		notifier:   notifier,
	}
}

func (s *reviewService) CreateModule(ctx context.Context, title, content string, competencyID *uuid.UUID) (*types.TrainingModule, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	title = normalization.TrimInputString(title)
	if title == "" {
		return nil, apperr.Validation("a title is required")
	}
	module := &types.TrainingModule{
		ID:           uuid.New(),
		Title:        title,
		Content:      content,
		CompetencyID: competencyID,
		Status:       types.ModuleDraft,
		SubmittedBy:  rd.UserID,
	}
	if _, err := s.moduleRepo.Create(ctx, nil, []*types.TrainingModule{module}); err != nil {
		return nil, apperr.Dependency(err, "create module")
	}
	return module, nil
}

// SubmitModule moves a draft or returned module into review. Resubmission of
// a returned module follows the same path.
func (s *reviewService) SubmitModule(ctx context.Context, moduleID uuid.UUID) (*types.TrainingModule, error) {
	module, rd, err := s.loadModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module.SubmittedBy != rd.UserID {
		return nil, apperr.Forbidden("only the author may submit this module")
	}
	if !types.CanTransitionModule(module.Status, types.ModuleSubmitted) {
		return nil, apperr.Conflict("module is %s, cannot submit", module.Status)
	}
	now := time.Now()
	if err := s.moduleRepo.UpdateFields(ctx, nil, module.ID, map[string]interface{}{
		"status":       types.ModuleSubmitted,
		"submitted_at": now,
	}); err != nil {
		return nil, apperr.Dependency(err, "submit module")
	}
	module.Status = types.ModuleSubmitted
	module.SubmittedAt = &now
	return module, nil
}

func (s *reviewService) ApproveModule(ctx context.Context, moduleID uuid.UUID, notes string) (*types.TrainingModule, error) {
	module, rd, err := s.loadModuleForReview(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.moduleRepo.UpdateFields(ctx, nil, module.ID, map[string]interface{}{
		"status":       types.ModulePublished,
		"reviewed_by":  rd.UserID,
		"reviewed_at":  now,
		"review_notes": notes,
	}); err != nil {
		return nil, apperr.Dependency(err, "approve module")
	}
	module.Status = types.ModulePublished
	module.ReviewedBy = &rd.UserID
	module.ReviewedAt = &now
	module.ReviewNotes = notes

	s.notifier.Notify(ctx, module.SubmittedBy, sse.SSEEventModuleReviewed, map[string]any{
		"module_id": module.ID,
		"status":    types.ModulePublished,
	})
	return module, nil
}

// RejectModule requires non-empty notes: returning a module without telling
// the author why is a validation error, not a UI nicety.
func (s *reviewService) RejectModule(ctx context.Context, moduleID uuid.UUID, notes string) (*types.TrainingModule, error) {
	if normalization.TrimInputString(notes) == "" {
		return nil, apperr.Validation("rejection requires notes")
	}
	module, rd, err := s.loadModuleForReview(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.moduleRepo.UpdateFields(ctx, nil, module.ID, map[string]interface{}{
		"status":       types.ModuleReturned,
		"reviewed_by":  rd.UserID,
		"reviewed_at":  now,
		"review_notes": notes,
	}); err != nil {
		return nil, apperr.Dependency(err, "reject module")
	}
	module.Status = types.ModuleReturned
	module.ReviewedBy = &rd.UserID
	module.ReviewedAt = &now
	module.ReviewNotes = notes

	s.notifier.Notify(ctx, module.SubmittedBy, sse.SSEEventModuleReviewed, map[string]any{
		"module_id": module.ID,
		"status":    types.ModuleReturned,
	})
	return module, nil
}

func (s *reviewService) loadModule(ctx context.Context, moduleID uuid.UUID) (*types.TrainingModule, *requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, nil, apperr.ErrUnauthorized
	}
	if moduleID == uuid.Nil {
		return nil, nil, apperr.Validation("no module selected")
	}
	module, err := s.moduleRepo.GetByID(ctx, nil, moduleID)
	if err != nil {
		return nil, nil, apperr.Dependency(err, "load module")
	}
	if module == nil {
		return nil, nil, apperr.NotFound("module %s", moduleID)
	}
	return module, rd, nil
}

func (s *reviewService) loadModuleForReview(ctx context.Context, moduleID uuid.UUID) (*types.TrainingModule, *requestdata.RequestData, error) {
	module, rd, err := s.loadModule(ctx, moduleID)
	if err != nil {
		return nil, nil, err
	}
	if rd.Role != requestdata.RoleAdmin && rd.Role != requestdata.RoleAssessor {
		return nil, nil, apperr.Forbidden("only reviewers may decide module submissions")
	}
	// Reviewing an already-published or already-returned module is a
	// conflict, never silently accepted.
	if module.Status != types.ModuleSubmitted {
		return nil, nil, apperr.Conflict("module is %s, not awaiting review", module.Status)
	}
	return module, rd, nil
}

func (s *reviewService) ListByStatus(ctx context.Context, statuses []types.ModuleStatus) ([]*types.TrainingModule, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if len(statuses) == 0 {
		statuses = []types.ModuleStatus{types.ModuleSubmitted}
	}
	rows, err := s.moduleRepo.ListByStatus(ctx, nil, statuses)
	if err != nil {
		return nil, apperr.Dependency(err, "list modules")
	}
	return rows, nil
}

func (s *reviewService) ListMine(ctx context.Context) ([]*types.TrainingModule, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.moduleRepo.ListBySubmitter(ctx, nil, rd.UserID)
	if err != nil {
		return nil, apperr.Dependency(err, "list own modules")
	}
	return rows, nil
}
