package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

type nominationFixture struct {
	svc            NominationService
	ucRepo         *fakeUserCompetencyRepo
	networkRepo    *fakeNetworkRepo
	nominationRepo *fakeNominationRepo
	memberRepo     *fakeMemberRepo
	competencyRepo *fakeCompetencyRepo
}

func newNominationFixture(t *testing.T) *nominationFixture {
	t.Helper()
	f := &nominationFixture{
		ucRepo:         newFakeUserCompetencyRepo(),
		networkRepo:    newFakeNetworkRepo(),
		nominationRepo: newFakeNominationRepo(),
		memberRepo:     &fakeMemberRepo{},
		competencyRepo: newFakeCompetencyRepo(),
	}
	f.svc = NewNominationService(
		&passRunner{},
		testLogger(t),
		f.ucRepo,
		f.networkRepo,
		f.nominationRepo,
		f.memberRepo,
		f.competencyRepo,
		&recordingNotifier{},
	)
	return f
}

func (f *nominationFixture) addAssignment(level int) *types.UserCompetency {
	uc := &types.UserCompetency{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		CompetencyID: uuid.New(),
		CurrentLevel: level,
		TargetLevel:  level,
		Status:       types.UserCompetencyAchieved,
	}
	f.ucRepo.rows[uc.ID] = uc
	return uc
}

func (f *nominationFixture) addNetwork(competencyID uuid.UUID) *types.ExpertNetwork {
	network := &types.ExpertNetwork{
		ID:           uuid.New(),
		CompetencyID: competencyID,
		Name:         "Expert Network",
		IsActive:     true,
	}
	f.networkRepo.rows[network.ID] = network
	return network
}

func TestSubmitNominationLevelGate(t *testing.T) {
	f := newNominationFixture(t)
	uc := f.addAssignment(2)

	_, err := f.svc.SubmitNomination(ctxAs(uuid.New(), "coach"), SubmitNominationInput{
		UserID:       uc.UserID,
		CompetencyID: uc.CompetencyID,
	})
	if !apperr.IsValidation(err) {
		t.Errorf("level 2 nomination should fail validation, got %v", err)
	}
}

func TestSubmitNominationDefaultRoles(t *testing.T) {
	cases := []struct {
		level int
		want  types.ExpertRole
	}{
		{3, types.ExpertRoleFSME},
		{4, types.ExpertRoleFSME},
		{5, types.ExpertRoleGSME},
	}
	for _, tc := range cases {
		f := newNominationFixture(t)
		uc := f.addAssignment(tc.level)

		nomination, err := f.svc.SubmitNomination(ctxAs(uuid.New(), "coach"), SubmitNominationInput{
			UserID:       uc.UserID,
			CompetencyID: uc.CompetencyID,
		})
		if err != nil {
			t.Fatalf("level %d: SubmitNomination: %v", tc.level, err)
		}
		if nomination.ProposedRole != tc.want {
			t.Errorf("level %d: proposed role = %s, want %s", tc.level, nomination.ProposedRole, tc.want)
		}
		if nomination.Status != types.NominationPending {
			t.Errorf("level %d: status = %s, want pending", tc.level, nomination.Status)
		}
		if nomination.CurrentLevel != tc.level {
			t.Errorf("level %d: nomination level = %d, want the assignment's level", tc.level, nomination.CurrentLevel)
		}
	}
}

func TestSubmitNominationAttachesNetwork(t *testing.T) {
	f := newNominationFixture(t)
	uc := f.addAssignment(4)
	network := f.addNetwork(uc.CompetencyID)

	nomination, err := f.svc.SubmitNomination(ctxAs(uuid.New(), "coach"), SubmitNominationInput{
		UserID:       uc.UserID,
		CompetencyID: uc.CompetencyID,
		ProposedRole: types.ExpertRoleGSME,
	})
	if err != nil {
		t.Fatalf("SubmitNomination: %v", err)
	}
	if nomination.NetworkID == nil || *nomination.NetworkID != network.ID {
		t.Errorf("nomination not attached to the competency's network")
	}
	if nomination.ProposedRole != types.ExpertRoleGSME {
		t.Errorf("explicit role overridden: %s", nomination.ProposedRole)
	}
}

func TestSubmitNominationAlreadyMemberConflict(t *testing.T) {
	f := newNominationFixture(t)
	uc := f.addAssignment(4)
	network := f.addNetwork(uc.CompetencyID)
	f.memberRepo.rows = append(f.memberRepo.rows, &types.ExpertNetworkMember{
		ID:        uuid.New(),
		UserID:    uc.UserID,
		NetworkID: network.ID,
	})

	_, err := f.svc.SubmitNomination(ctxAs(uuid.New(), "coach"), SubmitNominationInput{
		UserID:       uc.UserID,
		CompetencyID: uc.CompetencyID,
	})
	if !apperr.IsConflict(err) {
		t.Errorf("nominating an existing member should conflict, got %v", err)
	}
}

func TestSubmitNominationPendingConflict(t *testing.T) {
	f := newNominationFixture(t)
	uc := f.addAssignment(4)
	f.nominationRepo.rows[uuid.New()] = &types.ExpertNomination{
		ID:           uuid.New(),
		UserID:       uc.UserID,
		CompetencyID: uc.CompetencyID,
		Status:       types.NominationPending,
	}

	_, err := f.svc.SubmitNomination(ctxAs(uuid.New(), "coach"), SubmitNominationInput{
		UserID:       uc.UserID,
		CompetencyID: uc.CompetencyID,
	})
	if !apperr.IsConflict(err) {
		t.Errorf("duplicate pending nomination should conflict, got %v", err)
	}
}

func TestSubmitNominationWithoutAssignment(t *testing.T) {
	f := newNominationFixture(t)

	_, err := f.svc.SubmitNomination(ctxAs(uuid.New(), "coach"), SubmitNominationInput{
		UserID:       uuid.New(),
		CompetencyID: uuid.New(),
	})
	if !apperr.IsValidation(err) {
		t.Errorf("nomination without an assignment should fail validation, got %v", err)
	}
}

func TestApproveNominationCreatesMembership(t *testing.T) {
	f := newNominationFixture(t)
	uc := f.addAssignment(5)
	network := f.addNetwork(uc.CompetencyID)
	nomination := &types.ExpertNomination{
		ID:           uuid.New(),
		UserID:       uc.UserID,
		CompetencyID: uc.CompetencyID,
		NetworkID:    &network.ID,
		CurrentLevel: 5,
		ProposedRole: types.ExpertRoleGSME,
		Status:       types.NominationPending,
	}
	f.nominationRepo.rows[nomination.ID] = nomination
	admin := uuid.New()

	got, err := f.svc.ApproveNomination(ctxAs(admin, "admin"), nomination.ID)
	if err != nil {
		t.Fatalf("ApproveNomination: %v", err)
	}
	if got.Status != types.NominationApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}
	if got.DecidedBy == nil || *got.DecidedBy != admin || got.DecidedAt == nil {
		t.Errorf("decision stamp missing")
	}
	if len(f.memberRepo.rows) != 1 {
		t.Fatalf("expected 1 membership, have %d", len(f.memberRepo.rows))
	}
	if f.memberRepo.rows[0].UserID != uc.UserID || f.memberRepo.rows[0].NetworkID != network.ID {
		t.Errorf("membership points at wrong user or network")
	}
}

func TestApproveNominationWithoutNetworkConflict(t *testing.T) {
	f := newNominationFixture(t)
	nomination := &types.ExpertNomination{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		CompetencyID: uuid.New(),
		Status:       types.NominationPending,
	}
	f.nominationRepo.rows[nomination.ID] = nomination

	_, err := f.svc.ApproveNomination(ctxAs(uuid.New(), "admin"), nomination.ID)
	if !apperr.IsConflict(err) {
		t.Errorf("approval without a network should conflict, got %v", err)
	}
	if len(f.memberRepo.rows) != 0 {
		t.Errorf("no membership may be created")
	}
}

func TestDecideNominationAdminOnly(t *testing.T) {
	f := newNominationFixture(t)
	nomination := &types.ExpertNomination{ID: uuid.New(), Status: types.NominationPending}
	f.nominationRepo.rows[nomination.ID] = nomination

	if _, err := f.svc.ApproveNomination(ctxAs(uuid.New(), "coach"), nomination.ID); !apperr.IsForbidden(err) {
		t.Errorf("expected forbidden for coach, got %v", err)
	}
	if _, err := f.svc.RejectNomination(ctxAs(uuid.New(), "assessor"), nomination.ID, "no"); !apperr.IsForbidden(err) {
		t.Errorf("expected forbidden for assessor, got %v", err)
	}
}

func TestDecideNominationAlreadyDecided(t *testing.T) {
	f := newNominationFixture(t)
	nomination := &types.ExpertNomination{ID: uuid.New(), Status: types.NominationApproved}
	f.nominationRepo.rows[nomination.ID] = nomination

	if _, err := f.svc.RejectNomination(ctxAs(uuid.New(), "admin"), nomination.ID, "changed my mind"); !apperr.IsConflict(err) {
		t.Errorf("re-deciding should conflict, got %v", err)
	}
}

func TestRejectNominationNoMembership(t *testing.T) {
	f := newNominationFixture(t)
	uc := f.addAssignment(4)
	network := f.addNetwork(uc.CompetencyID)
	nomination := &types.ExpertNomination{
		ID:           uuid.New(),
		UserID:       uc.UserID,
		CompetencyID: uc.CompetencyID,
		NetworkID:    &network.ID,
		Status:       types.NominationPending,
	}
	f.nominationRepo.rows[nomination.ID] = nomination

	got, err := f.svc.RejectNomination(ctxAs(uuid.New(), "admin"), nomination.ID, "needs another year on site")
	if err != nil {
		t.Fatalf("RejectNomination: %v", err)
	}
	if got.Status != types.NominationRejected {
		t.Errorf("status = %s, want rejected", got.Status)
	}
	if len(f.memberRepo.rows) != 0 {
		t.Errorf("rejection must not create a membership")
	}
}

func TestCreateNetworkOnePerCompetency(t *testing.T) {
	f := newNominationFixture(t)
	competency := testCompetency(uuid.New())
	f.competencyRepo.rows[competency.ID] = competency
	ctx := ctxAs(uuid.New(), "admin")

	network, err := f.svc.CreateNetwork(ctx, competency.ID, "")
	if err != nil {
		t.Fatalf("CreateNetwork: %v", err)
	}
	if network.Name != competency.Name+" Expert Network" {
		t.Errorf("default name = %q", network.Name)
	}

	if _, err := f.svc.CreateNetwork(ctx, competency.ID, "Second"); !apperr.IsConflict(err) {
		t.Errorf("second network for the competency should conflict, got %v", err)
	}
}
