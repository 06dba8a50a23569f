package types

import "testing"

func TestCanTransitionActivity(t *testing.T) {
	cases := []struct {
		name string
		from ActivityStatus
		to   ActivityStatus
		want bool
	}{
		{name: "pending_to_in_progress", from: ActivityPending, to: ActivityInProgress, want: true},
		{name: "pending_to_completed", from: ActivityPending, to: ActivityCompleted, want: true},
		{name: "pending_to_cancelled", from: ActivityPending, to: ActivityCancelled, want: true},
		{name: "in_progress_to_completed", from: ActivityInProgress, to: ActivityCompleted, want: true},
		{name: "in_progress_to_validated_skips_completed", from: ActivityInProgress, to: ActivityValidated, want: false},
		{name: "completed_to_validated", from: ActivityCompleted, to: ActivityValidated, want: true},
		{name: "completed_to_cancelled", from: ActivityCompleted, to: ActivityCancelled, want: true},
		{name: "validated_is_terminal", from: ActivityValidated, to: ActivityCancelled, want: false},
		{name: "cancelled_is_terminal", from: ActivityCancelled, to: ActivityInProgress, want: false},
		{name: "no_backwards", from: ActivityCompleted, to: ActivityPending, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransitionActivity(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransitionActivity(%s, %s)=%v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestCanTransitionModule(t *testing.T) {
	cases := []struct {
		name string
		from ModuleStatus
		to   ModuleStatus
		want bool
	}{
		{name: "draft_to_submitted", from: ModuleDraft, to: ModuleSubmitted, want: true},
		{name: "submitted_to_published", from: ModuleSubmitted, to: ModulePublished, want: true},
		{name: "submitted_to_returned", from: ModuleSubmitted, to: ModuleReturned, want: true},
		{name: "returned_resubmit", from: ModuleReturned, to: ModuleSubmitted, want: true},
		{name: "published_is_terminal", from: ModulePublished, to: ModuleReturned, want: false},
		{name: "draft_cannot_publish", from: ModuleDraft, to: ModulePublished, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransitionModule(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransitionModule(%s, %s)=%v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestDeriveUserCompetencyStatus(t *testing.T) {
	if got := DeriveUserCompetencyStatus(4, 4); got != UserCompetencyAchieved {
		t.Fatalf("level at target: got %s, want %s", got, UserCompetencyAchieved)
	}
	if got := DeriveUserCompetencyStatus(5, 3); got != UserCompetencyAchieved {
		t.Fatalf("level above target: got %s, want %s", got, UserCompetencyAchieved)
	}
	if got := DeriveUserCompetencyStatus(2, 3); got != UserCompetencyInProgress {
		t.Fatalf("level below target: got %s, want %s", got, UserCompetencyInProgress)
	}
}

func TestDefaultExpertRole(t *testing.T) {
	if got := DefaultExpertRole(5); got != ExpertRoleGSME {
		t.Fatalf("level 5: got %s, want %s", got, ExpertRoleGSME)
	}
	if got := DefaultExpertRole(3); got != ExpertRoleFSME {
		t.Fatalf("level 3: got %s, want %s", got, ExpertRoleFSME)
	}
}
