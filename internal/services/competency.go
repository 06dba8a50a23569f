package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/normalization"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/repos"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/requestdata"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

// CompetencyService maintains the catalog: reference data read by every
// lifecycle operation and edited by admins.
type CompetencyService interface {
	CreateCompetency(ctx context.Context, competency *types.Competency) (*types.Competency, error)
	UpdateCompetency(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeactivateCompetency(ctx context.Context, id uuid.UUID) error
	GetCompetency(ctx context.Context, id uuid.UUID) (*types.Competency, error)
	ListCompetencies(ctx context.Context, activeOnly bool) ([]*types.Competency, error)
	CreateCategory(ctx context.Context, name string) (*types.CompetencyCategory, error)
	ListCategories(ctx context.Context) ([]*types.CompetencyCategory, error)
}

type competencyService struct {
	log            *logger.Logger
	competencyRepo repos.CompetencyRepo
	categoryRepo   repos.CompetencyCategoryRepo
}

func NewCompetencyService(
	baseLog *logger.Logger,
	competencyRepo repos.CompetencyRepo,
	categoryRepo repos.CompetencyCategoryRepo,
) CompetencyService {
	return &competencyService{
		log:            baseLog.With("service", "CompetencyService"),
		competencyRepo: competencyRepo,
		categoryRepo:   categoryRepo,
	}
}

func (s *competencyService) requireAdmin(ctx context.Context) (*requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if rd.Role != requestdata.RoleAdmin {
		return nil, apperr.Forbidden("only admins may edit the catalog")
	}
	return rd, nil
}

func (s *competencyService) CreateCompetency(ctx context.Context, competency *types.Competency) (*types.Competency, error) {
	rd, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if competency == nil {
		return nil, apperr.Validation("no competency given")
	}
	competency.Name = normalization.TrimInputString(competency.Name)
	if competency.Name == "" {
		return nil, apperr.Validation("a name is required")
	}
	competency.ID = uuid.New()
	competency.IsActive = true
	if competency.OwnerID == uuid.Nil {
		competency.OwnerID = rd.UserID
	}
	if _, err := s.competencyRepo.Create(ctx, nil, []*types.Competency{competency}); err != nil {
		return nil, apperr.Dependency(err, "create competency")
	}
	return competency, nil
}

func (s *competencyService) UpdateCompetency(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if _, err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if id == uuid.Nil {
		return apperr.Validation("no competency selected")
	}
	if len(updates) == 0 {
		return apperr.Validation("no updates given")
	}
	if err := s.competencyRepo.UpdateFields(ctx, nil, id, updates); err != nil {
		return apperr.Dependency(err, "update competency")
	}
	return nil
}

// DeactivateCompetency retires a competency from the catalog; existing
// assignments keep referencing it.
func (s *competencyService) DeactivateCompetency(ctx context.Context, id uuid.UUID) error {
	return s.UpdateCompetency(ctx, id, map[string]interface{}{"is_active": false})
}

func (s *competencyService) GetCompetency(ctx context.Context, id uuid.UUID) (*types.Competency, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	competency, err := s.competencyRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apperr.Dependency(err, "load competency")
	}
	if competency == nil {
		return nil, apperr.NotFound("competency %s", id)
	}
	return competency, nil
}

func (s *competencyService) ListCompetencies(ctx context.Context, activeOnly bool) ([]*types.Competency, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.competencyRepo.List(ctx, nil, activeOnly)
	if err != nil {
		return nil, apperr.Dependency(err, "list competencies")
	}
	return rows, nil
}

func (s *competencyService) CreateCategory(ctx context.Context, name string) (*types.CompetencyCategory, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	name = normalization.TrimInputString(name)
	if name == "" {
		return nil, apperr.Validation("a name is required")
	}
	category := &types.CompetencyCategory{ID: uuid.New(), Name: name}
	if _, err := s.categoryRepo.Create(ctx, nil, []*types.CompetencyCategory{category}); err != nil {
		return nil, apperr.Dependency(err, "create category")
	}
	return category, nil
}

func (s *competencyService) ListCategories(ctx context.Context) ([]*types.CompetencyCategory, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.categoryRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.Dependency(err, "list categories")
	}
	return rows, nil
}
