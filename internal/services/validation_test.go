package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/apperr"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

func newValidationFixture(t *testing.T, ucs []*types.UserCompetency, activities ...*types.DevelopmentActivity) (ValidationService, *fakeUserCompetencyRepo, *fakeActivityRepo) {
	t.Helper()
	ucRepo := newFakeUserCompetencyRepo(ucs...)
	activityRepo := newFakeActivityRepo(activities...)
	svc := NewValidationService(&passRunner{}, testLogger(t), ucRepo, activityRepo, &recordingNotifier{})
	return svc, ucRepo, activityRepo
}

func TestValidateAppendsAuditActivity(t *testing.T) {
	validator := uuid.New()
	uc := &types.UserCompetency{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		CompetencyID: uuid.New(),
		CurrentLevel: 2,
		TargetLevel:  3,
		Status:       types.UserCompetencyInProgress,
	}
	svc, ucRepo, activityRepo := newValidationFixture(t, []*types.UserCompetency{uc})

	got, err := svc.Validate(ctxAs(validator, "assessor"), uc.ID, 3, "observed on shift")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.CurrentLevel != 3 || got.Status != types.UserCompetencyAchieved {
		t.Errorf("assignment = level %d status %s, want level 3 achieved", got.CurrentLevel, got.Status)
	}
	if ucRepo.rows[uc.ID].CurrentLevel != 3 {
		t.Errorf("stored level not updated")
	}

	audit := activityRepo.onlyActivity(t)
	if audit.Type != types.ActivityValidationAudit {
		t.Errorf("audit type = %s, want validation_audit", audit.Type)
	}
	if audit.Status != types.ActivityValidated {
		t.Errorf("audit status = %s, want validated", audit.Status)
	}
	if audit.ValidatedBy == nil || *audit.ValidatedBy != validator {
		t.Errorf("audit missing validator")
	}
	if audit.TraineeID != uc.UserID || audit.CompetencyID != uc.CompetencyID {
		t.Errorf("audit not linked to the assignment")
	}
}

func TestValidateSameLevelStillAppendsAudit(t *testing.T) {
	uc := &types.UserCompetency{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		CompetencyID: uuid.New(),
		CurrentLevel: 3,
		TargetLevel:  3,
		Status:       types.UserCompetencyAchieved,
	}
	svc, _, activityRepo := newValidationFixture(t, []*types.UserCompetency{uc})

	if _, err := svc.Validate(ctxAs(uuid.New(), "assessor"), uc.ID, 3, "re-check"); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(activityRepo.rows) != 1 {
		t.Errorf("re-validation must still append an audit record, have %d", len(activityRepo.rows))
	}
}

func TestValidateTraineeForbidden(t *testing.T) {
	uc := &types.UserCompetency{ID: uuid.New(), UserID: uuid.New(), CompetencyID: uuid.New(), TargetLevel: 3}
	svc, _, _ := newValidationFixture(t, []*types.UserCompetency{uc})

	if _, err := svc.Validate(ctxAs(uc.UserID, "trainee"), uc.ID, 3, ""); !apperr.IsForbidden(err) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestValidateLevelBounds(t *testing.T) {
	uc := &types.UserCompetency{ID: uuid.New(), UserID: uuid.New(), CompetencyID: uuid.New(), TargetLevel: 3}
	svc, _, _ := newValidationFixture(t, []*types.UserCompetency{uc})
	ctx := ctxAs(uuid.New(), "assessor")

	for _, level := range []int{0, 6} {
		if _, err := svc.Validate(ctx, uc.ID, level, ""); !apperr.IsValidation(err) {
			t.Errorf("level %d: expected validation error, got %v", level, err)
		}
	}
}

func TestValidateActivityWritesBackAssignment(t *testing.T) {
	coach := uuid.New()
	uc := &types.UserCompetency{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		CompetencyID: uuid.New(),
		CurrentLevel: 1,
		TargetLevel:  3,
		Status:       types.UserCompetencyInProgress,
	}
	activity := &types.DevelopmentActivity{
		ID:           uuid.New(),
		Type:         types.ActivityCoaching,
		TraineeID:    uc.UserID,
		CoachID:      coach,
		CompetencyID: uc.CompetencyID,
		TargetLevel:  3,
		Status:       types.ActivityCompleted,
	}
	svc, ucRepo, activityRepo := newValidationFixture(t, []*types.UserCompetency{uc}, activity)

	got, err := svc.ValidateActivity(ctxAs(coach, "coach"), activity.ID, 3, "ran the audit solo")
	if err != nil {
		t.Fatalf("ValidateActivity: %v", err)
	}
	if got.Status != types.ActivityValidated {
		t.Errorf("activity status = %s, want validated", got.Status)
	}
	if activityRepo.rows[activity.ID].SuccessCriteria != "ran the audit solo" {
		t.Errorf("notes not recorded on the activity")
	}

	stored := ucRepo.rows[uc.ID]
	if stored.CurrentLevel != 3 || stored.Status != types.UserCompetencyAchieved {
		t.Errorf("assignment = level %d status %s, want level 3 achieved", stored.CurrentLevel, stored.Status)
	}
	if stored.LastAssessmentDate == nil {
		t.Errorf("last assessment date not stamped")
	}
}

func TestValidateActivityTransitionGuard(t *testing.T) {
	coach := uuid.New()
	uc := &types.UserCompetency{ID: uuid.New(), UserID: uuid.New(), CompetencyID: uuid.New(), TargetLevel: 3}

	for _, status := range []types.ActivityStatus{types.ActivityPending, types.ActivityInProgress, types.ActivityValidated, types.ActivityCancelled} {
		activity := &types.DevelopmentActivity{
			ID:           uuid.New(),
			Type:         types.ActivityCoaching,
			TraineeID:    uc.UserID,
			CoachID:      coach,
			CompetencyID: uc.CompetencyID,
			Status:       status,
		}
		svc, _, _ := newValidationFixture(t, []*types.UserCompetency{uc}, activity)

		if _, err := svc.ValidateActivity(ctxAs(coach, "coach"), activity.ID, 3, ""); !apperr.IsConflict(err) {
			t.Errorf("status %s: expected conflict, got %v", status, err)
		}
	}
}

func TestValidateActivityStrangerForbidden(t *testing.T) {
	uc := &types.UserCompetency{ID: uuid.New(), UserID: uuid.New(), CompetencyID: uuid.New(), TargetLevel: 3}
	activity := &types.DevelopmentActivity{
		ID:           uuid.New(),
		Type:         types.ActivityCoaching,
		TraineeID:    uc.UserID,
		CoachID:      uuid.New(),
		CompetencyID: uc.CompetencyID,
		Status:       types.ActivityCompleted,
	}
	svc, _, _ := newValidationFixture(t, []*types.UserCompetency{uc}, activity)

	if _, err := svc.ValidateActivity(ctxAs(uuid.New(), "coach"), activity.ID, 3, ""); !apperr.IsForbidden(err) {
		t.Errorf("expected forbidden for a coach who does not own the activity, got %v", err)
	}
}
