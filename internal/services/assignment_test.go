package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/sse"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

func newAssignmentFixture(t *testing.T, competency *types.Competency, existing ...*types.UserCompetency) (AssignmentService, *fakeUserCompetencyRepo, *fakeActivityRepo, *recordingNotifier) {
	t.Helper()
	ucRepo := newFakeUserCompetencyRepo(existing...)
	activityRepo := newFakeActivityRepo()
	notifier := &recordingNotifier{}
	svc := NewAssignmentService(
		&passRunner{},
		testLogger(t),
		newFakeCompetencyRepo(competency),
		ucRepo,
		activityRepo,
		notifier,
	)
	return svc, ucRepo, activityRepo, notifier
}

func testCompetency(owner uuid.UUID) *types.Competency {
	return &types.Competency{
		ID:           uuid.New(),
		Name:         "Root Cause Analysis",
		OwnerID:      owner,
		IsActive:     true,
		Level3Rubric: "Leads an investigation without supervision",
	}
}

func TestAssignCompetencySkipsAlreadyAssigned(t *testing.T) {
	coach := uuid.New()
	competency := testCompetency(coach)
	assignedUser := uuid.New()
	freshUser := uuid.New()

	svc, ucRepo, activityRepo, notifier := newAssignmentFixture(t, competency, &types.UserCompetency{
		ID:           uuid.New(),
		UserID:       assignedUser,
		CompetencyID: competency.ID,
		TargetLevel:  3,
		Status:       types.UserCompetencyAssigned,
	})

	result, err := svc.AssignCompetency(ctxAs(coach, "coach"), AssignCompetencyInput{
		CompetencyID: competency.ID,
		TargetLevel:  3,
		Mode:         AssignmentMode{Kind: AssignNeedsCoaching},
		UserIDs:      []uuid.UUID{assignedUser, freshUser},
	})
	if err != nil {
		t.Fatalf("AssignCompetency: %v", err)
	}
	if len(result.Succeeded) != 1 || len(result.Skipped) != 1 || len(result.Failed) != 0 {
		t.Fatalf("got %d succeeded, %d skipped, %d failed", len(result.Succeeded), len(result.Skipped), len(result.Failed))
	}
	if result.Skipped[0].ID != assignedUser {
		t.Errorf("skipped wrong user: %s", result.Skipped[0].ID)
	}
	if result.Succeeded[0].UserID != freshUser {
		t.Errorf("succeeded wrong user: %s", result.Succeeded[0].UserID)
	}
	if result.Succeeded[0].Status != types.UserCompetencyAssigned {
		t.Errorf("new assignment status = %s, want %s", result.Succeeded[0].Status, types.UserCompetencyAssigned)
	}
	if len(ucRepo.rows) != 2 {
		t.Errorf("expected 2 assignment rows, have %d", len(ucRepo.rows))
	}

	activity := activityRepo.onlyActivity(t)
	if activity.Type != types.ActivityCoaching {
		t.Errorf("activity type = %s, want coaching", activity.Type)
	}
	if activity.Status != types.ActivityPending {
		t.Errorf("activity status = %s, want pending", activity.Status)
	}
	if activity.CoachID != coach {
		t.Errorf("activity coach = %s, want competency owner %s", activity.CoachID, coach)
	}
	if activity.Objectives != competency.Level3Rubric {
		t.Errorf("activity objectives = %q, want level 3 rubric", activity.Objectives)
	}
	if notifier.count(sse.SSEEventCompetencyAssigned) != 1 {
		t.Errorf("expected 1 assignment notification, got %d", notifier.count(sse.SSEEventCompetencyAssigned))
	}
}

func TestAssignCompetencyAlreadyCompetentRecordsAudit(t *testing.T) {
	admin := uuid.New()
	competency := testCompetency(uuid.New())
	trainee := uuid.New()

	svc, _, activityRepo, _ := newAssignmentFixture(t, competency)

	result, err := svc.AssignCompetency(ctxAs(admin, "admin"), AssignCompetencyInput{
		CompetencyID: competency.ID,
		TargetLevel:  4,
		Mode:         AssignmentMode{Kind: AssignAlreadyCompetent, Level: 2},
		UserIDs:      []uuid.UUID{trainee},
	})
	if err != nil {
		t.Fatalf("AssignCompetency: %v", err)
	}
	if len(result.Succeeded) != 1 {
		t.Fatalf("expected 1 success, got %d", len(result.Succeeded))
	}
	uc := result.Succeeded[0]
	if uc.CurrentLevel != 2 {
		t.Errorf("current level = %d, want 2", uc.CurrentLevel)
	}
	if uc.Status != types.UserCompetencyInProgress {
		t.Errorf("status = %s, want in_progress (level 2 of target 4)", uc.Status)
	}

	activity := activityRepo.onlyActivity(t)
	if activity.Type != types.ActivityValidationAudit {
		t.Errorf("activity type = %s, want validation_audit", activity.Type)
	}
	if activity.Status != types.ActivityValidated {
		t.Errorf("activity status = %s, want validated", activity.Status)
	}
	if activity.ValidatedAt == nil || activity.ValidatedBy == nil || *activity.ValidatedBy != admin {
		t.Errorf("audit record missing validation stamp")
	}
}

func TestAssignCompetencyDuplicateKeyIsSkip(t *testing.T) {
	coach := uuid.New()
	competency := testCompetency(coach)
	trainee := uuid.New()

	svc, ucRepo, _, _ := newAssignmentFixture(t, competency)
	// Simulate losing the query-then-insert race: the fast path sees nothing
	// but the unique index rejects the insert.
	ucRepo.createErr = gorm.ErrDuplicatedKey

	result, err := svc.AssignCompetency(ctxAs(coach, "coach"), AssignCompetencyInput{
		CompetencyID: competency.ID,
		TargetLevel:  3,
		Mode:         AssignmentMode{Kind: AssignNeedsCoaching},
		UserIDs:      []uuid.UUID{trainee},
	})
	if err != nil {
		t.Fatalf("AssignCompetency: %v", err)
	}
	if len(result.Skipped) != 1 || len(result.Failed) != 0 {
		t.Fatalf("duplicate key should skip, got %d skipped, %d failed", len(result.Skipped), len(result.Failed))
	}
}

func TestAssignCompetencyInputValidation(t *testing.T) {
	coach := uuid.New()
	competency := testCompetency(coach)
	svc, _, _, _ := newAssignmentFixture(t, competency)
	ctx := ctxAs(coach, "coach")

	cases := []struct {
		name string
		in   AssignCompetencyInput
	}{
		{"no users", AssignCompetencyInput{CompetencyID: competency.ID, TargetLevel: 3, Mode: AssignmentMode{Kind: AssignNeedsCoaching}}},
		{"no competency", AssignCompetencyInput{TargetLevel: 3, Mode: AssignmentMode{Kind: AssignNeedsCoaching}, UserIDs: []uuid.UUID{uuid.New()}}},
		{"target level too high", AssignCompetencyInput{CompetencyID: competency.ID, TargetLevel: 6, Mode: AssignmentMode{Kind: AssignNeedsCoaching}, UserIDs: []uuid.UUID{uuid.New()}}},
		{"target level too low", AssignCompetencyInput{CompetencyID: competency.ID, TargetLevel: 0, Mode: AssignmentMode{Kind: AssignNeedsCoaching}, UserIDs: []uuid.UUID{uuid.New()}}},
		{"competent without level", AssignCompetencyInput{CompetencyID: competency.ID, TargetLevel: 3, Mode: AssignmentMode{Kind: AssignAlreadyCompetent}, UserIDs: []uuid.UUID{uuid.New()}}},
		{"unknown mode", AssignCompetencyInput{CompetencyID: competency.ID, TargetLevel: 3, Mode: AssignmentMode{Kind: "certified"}, UserIDs: []uuid.UUID{uuid.New()}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AssignCompetency(ctx, tc.in); !apperr.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAssignCompetencyInactiveCompetency(t *testing.T) {
	coach := uuid.New()
	competency := testCompetency(coach)
	competency.IsActive = false
	svc, _, _, _ := newAssignmentFixture(t, competency)

	_, err := svc.AssignCompetency(ctxAs(coach, "coach"), AssignCompetencyInput{
		CompetencyID: competency.ID,
		TargetLevel:  3,
		Mode:         AssignmentMode{Kind: AssignNeedsCoaching},
		UserIDs:      []uuid.UUID{uuid.New()},
	})
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found for inactive competency, got %v", err)
	}
}

func TestAssignCompetencyExplicitCoachAndDueDate(t *testing.T) {
	owner := uuid.New()
	competency := testCompetency(owner)
	coach := uuid.New()
	due := time.Now().AddDate(0, 3, 0)

	svc, _, activityRepo, _ := newAssignmentFixture(t, competency)

	result, err := svc.AssignCompetency(ctxAs(owner, "admin"), AssignCompetencyInput{
		CompetencyID: competency.ID,
		TargetLevel:  3,
		Mode:         AssignmentMode{Kind: AssignNeedsCoaching},
		UserIDs:      []uuid.UUID{uuid.New()},
		CoachID:      &coach,
		TargetDate:   &due,
	})
	if err != nil {
		t.Fatalf("AssignCompetency: %v", err)
	}
	if result.Succeeded[0].TargetDate == nil || !result.Succeeded[0].TargetDate.Equal(due) {
		t.Errorf("target date not carried onto assignment")
	}
	activity := activityRepo.onlyActivity(t)
	if activity.CoachID != coach {
		t.Errorf("explicit coach %s not used, got %s", coach, activity.CoachID)
	}
	if activity.DueDate == nil || !activity.DueDate.Equal(due) {
		t.Errorf("due date not carried onto activity")
	}
}
