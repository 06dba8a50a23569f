package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/requestdata"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/sse"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/txn"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func ctxAs(userID uuid.UUID, role string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: userID,
		Role:   role,
	})
}

// passRunner satisfies txn.Runner without a database; repos built for tests
// ignore the tx argument anyway.
type passRunner struct {
	calls int
	err   error
}

var _ txn.Runner = (*passRunner)(nil)

func (r *passRunner) InTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return fn(nil)
}

type recordedNotification struct {
	UserID uuid.UUID
	Event  sse.SSEEvent
}

type recordingNotifier struct {
	sent []recordedNotification
}

func (n *recordingNotifier) Notify(_ context.Context, userID uuid.UUID, event sse.SSEEvent, _ map[string]any) {
	n.sent = append(n.sent, recordedNotification{UserID: userID, Event: event})
}

func (n *recordingNotifier) count(event sse.SSEEvent) int {
	c := 0
	for _, s := range n.sent {
		if s.Event == event {
			c++
		}
	}
	return c
}

type fakeCompetencyRepo struct {
	rows map[uuid.UUID]*types.Competency
	err  error
}

func newFakeCompetencyRepo(rows ...*types.Competency) *fakeCompetencyRepo {
	m := make(map[uuid.UUID]*types.Competency, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return &fakeCompetencyRepo{rows: m}
}

func (f *fakeCompetencyRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Competency) ([]*types.Competency, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return rows, nil
}

func (f *fakeCompetencyRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []uuid.UUID) ([]*types.Competency, error) {
	var out []*types.Competency
	for _, id := range ids {
		if r, ok := f.rows[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCompetencyRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Competency, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[id], nil
}

func (f *fakeCompetencyRepo) List(_ context.Context, _ *gorm.DB, activeOnly bool) ([]*types.Competency, error) {
	var out []*types.Competency
	for _, r := range f.rows {
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeCompetencyRepo) ListByCategory(_ context.Context, _ *gorm.DB, categoryID uuid.UUID) ([]*types.Competency, error) {
	var out []*types.Competency
	for _, r := range f.rows {
		if r.CategoryID != nil && *r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCompetencyRepo) Update(_ context.Context, _ *gorm.DB, row *types.Competency) error {
	f.rows[row.ID] = row
	return nil
}

func (f *fakeCompetencyRepo) UpdateFields(_ context.Context, _ *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	r, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["is_active"]; ok {
		r.IsActive = v.(bool)
	}
	if v, ok := updates["name"]; ok {
		r.Name = v.(string)
	}
	return nil
}

type fakeUserCompetencyRepo struct {
	rows      map[uuid.UUID]*types.UserCompetency
	createErr error
}

func newFakeUserCompetencyRepo(rows ...*types.UserCompetency) *fakeUserCompetencyRepo {
	m := make(map[uuid.UUID]*types.UserCompetency, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return &fakeUserCompetencyRepo{rows: m}
}

func (f *fakeUserCompetencyRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.UserCompetency) ([]*types.UserCompetency, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, r := range rows {
		for _, existing := range f.rows {
			if existing.UserID == r.UserID && existing.CompetencyID == r.CompetencyID {
				return nil, gorm.ErrDuplicatedKey
			}
		}
		f.rows[r.ID] = r
	}
	return rows, nil
}

func (f *fakeUserCompetencyRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.UserCompetency, error) {
	return f.rows[id], nil
}

func (f *fakeUserCompetencyRepo) GetByUserAndCompetency(_ context.Context, _ *gorm.DB, userID, competencyID uuid.UUID) (*types.UserCompetency, error) {
	for _, r := range f.rows {
		if r.UserID == userID && r.CompetencyID == competencyID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeUserCompetencyRepo) ListByUserIDs(_ context.Context, _ *gorm.DB, userIDs []uuid.UUID) ([]*types.UserCompetency, error) {
	var out []*types.UserCompetency
	for _, r := range f.rows {
		for _, id := range userIDs {
			if r.UserID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeUserCompetencyRepo) ListByCompetencyID(_ context.Context, _ *gorm.DB, competencyID uuid.UUID) ([]*types.UserCompetency, error) {
	var out []*types.UserCompetency
	for _, r := range f.rows {
		if r.CompetencyID == competencyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeUserCompetencyRepo) UpdateFields(_ context.Context, _ *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	r, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["current_level"]; ok {
		r.CurrentLevel = v.(int)
	}
	if v, ok := updates["status"]; ok {
		r.Status = v.(types.UserCompetencyStatus)
	}
	if v, ok := updates["last_assessment_date"]; ok {
		t := v.(time.Time)
		r.LastAssessmentDate = &t
	}
	return nil
}

func (f *fakeUserCompetencyRepo) SoftDeleteByIDs(_ context.Context, _ *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(f.rows, id)
	}
	return nil
}

type fakeActivityRepo struct {
	rows map[uuid.UUID]*types.DevelopmentActivity
}

func newFakeActivityRepo(rows ...*types.DevelopmentActivity) *fakeActivityRepo {
	m := make(map[uuid.UUID]*types.DevelopmentActivity, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return &fakeActivityRepo{rows: m}
}

func (f *fakeActivityRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.DevelopmentActivity) ([]*types.DevelopmentActivity, error) {
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return rows, nil
}

func (f *fakeActivityRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.DevelopmentActivity, error) {
	return f.rows[id], nil
}

func (f *fakeActivityRepo) ListByTraineeID(_ context.Context, _ *gorm.DB, traineeID uuid.UUID) ([]*types.DevelopmentActivity, error) {
	var out []*types.DevelopmentActivity
	for _, r := range f.rows {
		if r.TraineeID == traineeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) ListByCoachID(_ context.Context, _ *gorm.DB, coachID uuid.UUID, statuses []types.ActivityStatus) ([]*types.DevelopmentActivity, error) {
	var out []*types.DevelopmentActivity
	for _, r := range f.rows {
		if r.CoachID != coachID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if r.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeActivityRepo) ListByTraineeAndCompetency(_ context.Context, _ *gorm.DB, traineeID, competencyID uuid.UUID) ([]*types.DevelopmentActivity, error) {
	var out []*types.DevelopmentActivity
	for _, r := range f.rows {
		if r.TraineeID == traineeID && r.CompetencyID == competencyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) UpdateFields(_ context.Context, _ *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	r, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["status"]; ok {
		r.Status = v.(types.ActivityStatus)
	}
	if v, ok := updates["completed_at"]; ok {
		t := v.(time.Time)
		r.CompletedAt = &t
	}
	if v, ok := updates["validated_at"]; ok {
		t := v.(time.Time)
		r.ValidatedAt = &t
	}
	if v, ok := updates["validated_by"]; ok {
		id := v.(uuid.UUID)
		r.ValidatedBy = &id
	}
	if v, ok := updates["success_criteria"]; ok {
		r.SuccessCriteria = v.(string)
	}
	return nil
}

// single coaching activity lookup used by assignment tests
func (f *fakeActivityRepo) onlyActivity(t *testing.T) *types.DevelopmentActivity {
	t.Helper()
	if len(f.rows) != 1 {
		t.Fatalf("expected exactly 1 activity, have %d", len(f.rows))
	}
	for _, r := range f.rows {
		return r
	}
	return nil
}

type fakeFeedbackRepo struct {
	rows []*types.ActivityFeedback
}

func (f *fakeFeedbackRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.ActivityFeedback) ([]*types.ActivityFeedback, error) {
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *fakeFeedbackRepo) ListByActivityID(_ context.Context, _ *gorm.DB, activityID uuid.UUID) ([]*types.ActivityFeedback, error) {
	var out []*types.ActivityFeedback
	for _, r := range f.rows {
		if r.ActivityID == activityID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAssessmentRepo struct {
	rows []*types.Assessment
}

func (f *fakeAssessmentRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Assessment) ([]*types.Assessment, error) {
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *fakeAssessmentRepo) ListByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) ([]*types.Assessment, error) {
	var out []*types.Assessment
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAssessmentRepo) ListByUserAndCompetency(_ context.Context, _ *gorm.DB, userID, competencyID uuid.UUID) ([]*types.Assessment, error) {
	var out []*types.Assessment
	for _, r := range f.rows {
		if r.UserID == userID && r.CompetencyID == competencyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeNetworkRepo struct {
	rows map[uuid.UUID]*types.ExpertNetwork
}

func newFakeNetworkRepo(rows ...*types.ExpertNetwork) *fakeNetworkRepo {
	m := make(map[uuid.UUID]*types.ExpertNetwork, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return &fakeNetworkRepo{rows: m}
}

func (f *fakeNetworkRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.ExpertNetwork) ([]*types.ExpertNetwork, error) {
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return rows, nil
}

func (f *fakeNetworkRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.ExpertNetwork, error) {
	return f.rows[id], nil
}

func (f *fakeNetworkRepo) GetByCompetencyID(_ context.Context, _ *gorm.DB, competencyID uuid.UUID) (*types.ExpertNetwork, error) {
	for _, r := range f.rows {
		if r.CompetencyID == competencyID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeNetworkRepo) List(_ context.Context, _ *gorm.DB, activeOnly bool) ([]*types.ExpertNetwork, error) {
	var out []*types.ExpertNetwork
	for _, r := range f.rows {
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeNominationRepo struct {
	rows map[uuid.UUID]*types.ExpertNomination
}

func newFakeNominationRepo(rows ...*types.ExpertNomination) *fakeNominationRepo {
	m := make(map[uuid.UUID]*types.ExpertNomination, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return &fakeNominationRepo{rows: m}
}

func (f *fakeNominationRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.ExpertNomination) ([]*types.ExpertNomination, error) {
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return rows, nil
}

func (f *fakeNominationRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.ExpertNomination, error) {
	return f.rows[id], nil
}

func (f *fakeNominationRepo) HasPending(_ context.Context, _ *gorm.DB, userID, competencyID uuid.UUID) (bool, error) {
	for _, r := range f.rows {
		if r.UserID == userID && r.CompetencyID == competencyID && r.Status == types.NominationPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNominationRepo) ListByStatus(_ context.Context, _ *gorm.DB, status types.NominationStatus) ([]*types.ExpertNomination, error) {
	var out []*types.ExpertNomination
	for _, r := range f.rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeNominationRepo) ListByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) ([]*types.ExpertNomination, error) {
	var out []*types.ExpertNomination
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeNominationRepo) UpdateFields(_ context.Context, _ *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	r, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["status"]; ok {
		r.Status = v.(types.NominationStatus)
	}
	if v, ok := updates["decided_by"]; ok {
		id := v.(uuid.UUID)
		r.DecidedBy = &id
	}
	if v, ok := updates["decided_at"]; ok {
		t := v.(time.Time)
		r.DecidedAt = &t
	}
	if v, ok := updates["notes"]; ok {
		r.Notes = v.(string)
	}
	return nil
}

type fakeMemberRepo struct {
	rows []*types.ExpertNetworkMember
}

func (f *fakeMemberRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.ExpertNetworkMember) ([]*types.ExpertNetworkMember, error) {
	f.rows = append(f.rows, rows...)
	return rows, nil
}

func (f *fakeMemberRepo) Exists(_ context.Context, _ *gorm.DB, userID, networkID uuid.UUID) (bool, error) {
	for _, r := range f.rows {
		if r.UserID == userID && r.NetworkID == networkID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMemberRepo) ListByNetworkID(_ context.Context, _ *gorm.DB, networkID uuid.UUID) ([]*types.ExpertNetworkMember, error) {
	var out []*types.ExpertNetworkMember
	for _, r := range f.rows {
		if r.NetworkID == networkID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeModuleRepo struct {
	rows map[uuid.UUID]*types.TrainingModule
}

func newFakeModuleRepo(rows ...*types.TrainingModule) *fakeModuleRepo {
	m := make(map[uuid.UUID]*types.TrainingModule, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return &fakeModuleRepo{rows: m}
}

func (f *fakeModuleRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.TrainingModule) ([]*types.TrainingModule, error) {
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return rows, nil
}

func (f *fakeModuleRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.TrainingModule, error) {
	return f.rows[id], nil
}

func (f *fakeModuleRepo) ListByStatus(_ context.Context, _ *gorm.DB, statuses []types.ModuleStatus) ([]*types.TrainingModule, error) {
	var out []*types.TrainingModule
	for _, r := range f.rows {
		for _, s := range statuses {
			if r.Status == s {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeModuleRepo) ListBySubmitter(_ context.Context, _ *gorm.DB, submittedBy uuid.UUID) ([]*types.TrainingModule, error) {
	var out []*types.TrainingModule
	for _, r := range f.rows {
		if r.SubmittedBy == submittedBy {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeModuleRepo) UpdateFields(_ context.Context, _ *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	r, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["status"]; ok {
		r.Status = v.(types.ModuleStatus)
	}
	if v, ok := updates["submitted_at"]; ok {
		t := v.(time.Time)
		r.SubmittedAt = &t
	}
	if v, ok := updates["reviewed_by"]; ok {
		id := v.(uuid.UUID)
		r.ReviewedBy = &id
	}
	if v, ok := updates["reviewed_at"]; ok {
		t := v.(time.Time)
		r.ReviewedAt = &t
	}
	if v, ok := updates["review_notes"]; ok {
		r.ReviewNotes = v.(string)
	}
	return nil
}
