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

// NominationMinLevel is the lowest validated level that makes a trainee
// eligible for an expert network.
const NominationMinLevel = 3

type SubmitNominationInput struct {
	UserID       uuid.UUID
	CompetencyID uuid.UUID
	ProposedRole types.ExpertRole
	SiteName     string
	Notes        string
}

type NominationService interface {
	SubmitNomination(ctx context.Context, in SubmitNominationInput) (*types.ExpertNomination, error)
	ApproveNomination(ctx context.Context, nominationID uuid.UUID) (*types.ExpertNomination, error)
	RejectNomination(ctx context.Context, nominationID uuid.UUID, notes string) (*types.ExpertNomination, error)
	ListPending(ctx context.Context) ([]*types.ExpertNomination, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.ExpertNomination, error)
	CreateNetwork(ctx context.Context, competencyID uuid.UUID, name string) (*types.ExpertNetwork, error)
	ListNetworkMembers(ctx context.Context, networkID uuid.UUID) ([]*types.ExpertNetworkMember, error)
}

type nominationService struct {
	runner             txn.Runner
	log                *logger.Logger
	userCompetencyRepo repos.UserCompetencyRepo
	networkRepo        repos.ExpertNetworkRepo
	nominationRepo     repos.ExpertNominationRepo
	memberRepo         repos.ExpertNetworkMemberRepo
	competencyRepo     repos.CompetencyRepo
	notifier           Notifier
}

func NewNominationService(
	runner txn.Runner,
	baseLog *logger.Logger,
	userCompetencyRepo repos.UserCompetencyRepo,
	networkRepo repos.ExpertNetworkRepo,
	nominationRepo repos.ExpertNominationRepo,
	memberRepo repos.ExpertNetworkMemberRepo,
	competencyRepo repos.CompetencyRepo,
	notifier Notifier,
) NominationService {
	return &nominationService{
		runner:             runner,
		log:                baseLog.With("service", "NominationService"),
		userCompetencyRepo: userCompetencyRepo,
		networkRepo:        networkRepo,
		nominationRepo:     nominationRepo,
		memberRepo:         memberRepo,
		competencyRepo:     competencyRepo,
		notifier:           notifier,
	}
}

// SubmitNomination enforces the eligibility gate: validated level >= 3, not
// already a network member, no pending nomination for the same pair. The
// network is looked up but never created here; network creation is a separate
// administrative action.
func (s *nominationService) SubmitNomination(ctx context.Context, in SubmitNominationInput) (*types.ExpertNomination, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if in.UserID == uuid.Nil {
		return nil, apperr.Validation("no user selected")
	}
	if in.CompetencyID == uuid.Nil {
		return nil, apperr.Validation("no competency selected")
	}

	uc, err := s.userCompetencyRepo.GetByUserAndCompetency(ctx, nil, in.UserID, in.CompetencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "load assignment")
	}
	if uc == nil {
		return nil, apperr.Validation("user has no assignment for this competency")
	}
	if uc.CurrentLevel < NominationMinLevel {
		return nil, apperr.Validation("user is at level %d, level %d required for nomination", uc.CurrentLevel, NominationMinLevel)
	}

	network, err := s.networkRepo.GetByCompetencyID(ctx, nil, in.CompetencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "look up expert network")
	}
	if network != nil {
		isMember, err := s.memberRepo.Exists(ctx, nil, in.UserID, network.ID)
		if err != nil {
			return nil, apperr.Dependency(err, "check network membership")
		}
		if isMember {
			return nil, apperr.Conflict("user is already a member of the expert network")
		}
	}
	hasPending, err := s.nominationRepo.HasPending(ctx, nil, in.UserID, in.CompetencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "check pending nominations")
	}
	if hasPending {
		return nil, apperr.Conflict("a pending nomination already exists for this user and competency")
	}

	role := in.ProposedRole
	if role == "" {
		role = types.DefaultExpertRole(uc.CurrentLevel)
	}

	nomination := &types.ExpertNomination{
		ID:           uuid.New(),
		UserID:       in.UserID,
		NominatedBy:  rd.UserID,
		CompetencyID: in.CompetencyID,
		CurrentLevel: uc.CurrentLevel,
		ProposedRole: role,
		Status:       types.NominationPending,
		SiteName:     in.SiteName,
		Notes:        in.Notes,
	}
	if network != nil {
		nomination.NetworkID = &network.ID
	}
	if _, err := s.nominationRepo.Create(ctx, nil, []*types.ExpertNomination{nomination}); err != nil {
		return nil, apperr.Dependency(err, "create nomination")
	}

	s.notifier.Notify(ctx, in.UserID, sse.SSEEventNominationSubmitted, map[string]any{
		"nomination_id": nomination.ID,
		"competency_id": in.CompetencyID,
		"proposed_role": role,
	})
	return nomination, nil
}

// ApproveNomination creates the network membership and marks the nomination
// approved. A nomination without a network cannot be approved: membership
// needs a network to attach to.
func (s *nominationService) ApproveNomination(ctx context.Context, nominationID uuid.UUID) (*types.ExpertNomination, error) {
	nomination, rd, err := s.loadForDecision(ctx, nominationID)
	if err != nil {
		return nil, err
	}
	if nomination.NetworkID == nil {
		return nil, apperr.Conflict("competency has no expert network yet; create the network first")
	}
	isMember, err := s.memberRepo.Exists(ctx, nil, nomination.UserID, *nomination.NetworkID)
	if err != nil {
		return nil, apperr.Dependency(err, "check network membership")
	}
	if isMember {
		return nil, apperr.Conflict("user is already a member of the expert network")
	}

	now := time.Now()
	err = s.runner.InTx(ctx, func(tx *gorm.DB) error {
		member := &types.ExpertNetworkMember{
			ID:        uuid.New(),
			UserID:    nomination.UserID,
			NetworkID: *nomination.NetworkID,
		}
		if _, err := s.memberRepo.Create(ctx, tx, []*types.ExpertNetworkMember{member}); err != nil {
			return err
		}
		return s.nominationRepo.UpdateFields(ctx, tx, nomination.ID, map[string]interface{}{
			"status":     types.NominationApproved,
			"decided_by": rd.UserID,
			"decided_at": now,
		})
	})
	if err != nil {
		return nil, apperr.Dependency(err, "approve nomination")
	}

	nomination.Status = types.NominationApproved
	nomination.DecidedBy = &rd.UserID
	nomination.DecidedAt = &now

	s.notifier.Notify(ctx, nomination.UserID, sse.SSEEventNominationDecided, map[string]any{
		"nomination_id": nomination.ID,
		"status":        types.NominationApproved,
	})
	return nomination, nil
}

// RejectNomination only updates status; no membership side effect.
func (s *nominationService) RejectNomination(ctx context.Context, nominationID uuid.UUID, notes string) (*types.ExpertNomination, error) {
	nomination, rd, err := s.loadForDecision(ctx, nominationID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	updates := map[string]interface{}{
		"status":     types.NominationRejected,
		"decided_by": rd.UserID,
		"decided_at": now,
	}
	if notes != "" {
		updates["notes"] = notes
	}
	if err := s.nominationRepo.UpdateFields(ctx, nil, nomination.ID, updates); err != nil {
		return nil, apperr.Dependency(err, "reject nomination")
	}

	nomination.Status = types.NominationRejected
	nomination.DecidedBy = &rd.UserID
	nomination.DecidedAt = &now

	s.notifier.Notify(ctx, nomination.UserID, sse.SSEEventNominationDecided, map[string]any{
		"nomination_id": nomination.ID,
		"status":        types.NominationRejected,
	})
	return nomination, nil
}

func (s *nominationService) loadForDecision(ctx context.Context, nominationID uuid.UUID) (*types.ExpertNomination, *requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, nil, apperr.ErrUnauthorized
	}
	if rd.Role != requestdata.RoleAdmin {
		return nil, nil, apperr.Forbidden("only admins may decide nominations")
	}
	if nominationID == uuid.Nil {
		return nil, nil, apperr.Validation("no nomination selected")
	}
	nomination, err := s.nominationRepo.GetByID(ctx, nil, nominationID)
	if err != nil {
		return nil, nil, apperr.Dependency(err, "load nomination")
	}
	if nomination == nil {
		return nil, nil, apperr.NotFound("nomination %s", nominationID)
	}
	if !types.CanTransitionNomination(nomination.Status, types.NominationApproved) {
		return nil, nil, apperr.Conflict("nomination is %s, already decided", nomination.Status)
	}
	return nomination, rd, nil
}

func (s *nominationService) ListPending(ctx context.Context) ([]*types.ExpertNomination, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.nominationRepo.ListByStatus(ctx, nil, types.NominationPending)
	if err != nil {
		return nil, apperr.Dependency(err, "list pending nominations")
	}
	return rows, nil
}

func (s *nominationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.ExpertNomination, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if userID == uuid.Nil {
		userID = rd.UserID
	}
	rows, err := s.nominationRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Dependency(err, "list nominations")
	}
	return rows, nil
}

// CreateNetwork is the administrative action that sets up a competency's
// expert network. One network per competency.
func (s *nominationService) CreateNetwork(ctx context.Context, competencyID uuid.UUID, name string) (*types.ExpertNetwork, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if rd.Role != requestdata.RoleAdmin {
		return nil, apperr.Forbidden("only admins may create expert networks")
	}
	if competencyID == uuid.Nil {
		return nil, apperr.Validation("no competency selected")
	}
	competency, err := s.competencyRepo.GetByID(ctx, nil, competencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "load competency")
	}
	if competency == nil {
		return nil, apperr.NotFound("competency %s", competencyID)
	}
	existing, err := s.networkRepo.GetByCompetencyID(ctx, nil, competencyID)
	if err != nil {
		return nil, apperr.Dependency(err, "look up expert network")
	}
	if existing != nil {
		return nil, apperr.Conflict("competency already has an expert network")
	}
	if name == "" {
		name = competency.Name + " Expert Network"
	}
	network := &types.ExpertNetwork{
		ID:           uuid.New(),
		CompetencyID: competencyID,
		Name:         name,
		IsActive:     true,
	}
	if _, err := s.networkRepo.Create(ctx, nil, []*types.ExpertNetwork{network}); err != nil {
		return nil, apperr.Dependency(err, "create expert network")
	}
	return network, nil
}

func (s *nominationService) ListNetworkMembers(ctx context.Context, networkID uuid.UUID) ([]*types.ExpertNetworkMember, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	rows, err := s.memberRepo.ListByNetworkID(ctx, nil, networkID)
	if err != nil {
		return nil, apperr.Dependency(err, "list network members")
	}
	return rows, nil
}
