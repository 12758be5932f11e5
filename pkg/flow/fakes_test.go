package flow

import (
	"context"
	"sync"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/pkg/analysis"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
)

type fakeSession struct {
	authenticated bool
	expired       bool
	err           error
	calls         int
	gate          chan struct{}
}

func (f *fakeSession) SignOut(context.Context) error {
	f.calls++
	if f.gate != nil {
		<-f.gate
	}
	return f.err
}

func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeSession) Expired() bool         { return f.expired }

// fakeData stands in for the access layer.
type fakeData struct {
	mu        sync.Mutex
	plan      domain.PlanResult
	planErr   error
	saved     []domain.SaveMealRequest
	saveErr   error
	created   []domain.CreatePlanRequest
	createErr error
	profile   *domain.Profile
	updates   []domain.UpdateProfileRequest
	updateErr error
}

func (f *fakeData) GetPlan(context.Context) (domain.PlanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plan, f.planErr
}

func (f *fakeData) SaveMeal(_ context.Context, req domain.SaveMealRequest) (*domain.SavedMeal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, req)
	return &domain.SavedMeal{ID: "m1", MealType: req.MealType, Score: req.Analysis.Score}, nil
}

func (f *fakeData) CreatePlan(_ context.Context, req domain.CreatePlanRequest) (*domain.CreatedPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	f.plan = domain.PlanResult{Plan: &domain.NutritionPlan{Name: req.Name, Source: req.Source}, HasPlan: true}
	return &domain.CreatedPlan{ID: "p1", Name: req.Name, Source: req.Source}, nil
}

func (f *fakeData) GetProfile(context.Context) (*domain.Profile, error) {
	return f.profile, nil
}

func (f *fakeData) UpdateProfile(_ context.Context, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates = append(f.updates, req)
	return nil, nil
}

type fakeUploader struct {
	url    string
	err    error
	folder string
}

func (f *fakeUploader) UploadBytes(_ context.Context, _ string, _ []byte, folder string, _ ...string) (string, error) {
	f.folder = folder
	return f.url, f.err
}

type fakeAnalyzer struct {
	result domain.MealAnalysis
	err    error
	got    analysis.AnalyzeRequest
	gate   chan struct{}
}

func (f *fakeAnalyzer) AnalyzeMeal(_ context.Context, req analysis.AnalyzeRequest) (domain.MealAnalysis, error) {
	f.got = req
	if f.gate != nil {
		<-f.gate
	}
	return f.result, f.err
}

type fakeParser struct {
	draft domain.CreatePlanRequest
	err   error
}

func (f *fakeParser) ParsePlan(context.Context, []byte, string) (domain.CreatePlanRequest, error) {
	return f.draft, f.err
}

type fakeAuth struct {
	session *domain.Session
	err     error
	emails  []string
}

func (f *fakeAuth) SignUp(_ context.Context, email, _ string) (*domain.Session, error) {
	f.emails = append(f.emails, email)
	return f.session, f.err
}

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (*domain.Session, error) {
	f.emails = append(f.emails, email)
	return f.session, f.err
}

func (f *fakeAuth) ResetPassword(_ context.Context, email string) error {
	f.emails = append(f.emails, email)
	return f.err
}

func testSession() *domain.Session {
	return &domain.Session{AccessToken: "t", User: domain.Identity{ID: fixtures.TestUserID}}
}

type staticIdentity struct{ identity *domain.Identity }

func (s staticIdentity) Identity() *domain.Identity { return s.identity }
