package flow

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/pkg/analysis"
)

type PlanStep string

const (
	PlanEmpty     PlanStep = "empty"
	PlanImporting PlanStep = "importing"
	PlanReview    PlanStep = "review"
	PlanActive    PlanStep = "active"
)

var (
	MessageParsePlanFailed = "We couldn't read that plan. Try a clearer file."
	MessagePlanActivated   = "Plan activated"
)

type (
	PlanStore interface {
		GetPlan(ctx context.Context) (domain.PlanResult, error)
		CreatePlan(ctx context.Context, req domain.CreatePlanRequest) (*domain.CreatedPlan, error)
	}

	PlanImportView struct {
		Step             PlanStep                  `json:"step"`
		Subtitle         string                    `json:"subtitle"`
		Plan             *domain.NutritionPlan     `json:"plan,omitempty"`
		Draft            *domain.CreatePlanRequest `json:"draft,omitempty"`
		SelectedTemplate string                    `json:"selectedTemplate,omitempty"`
		Error            string                    `json:"error,omitempty"`
		Effects
	}

	PlanImport struct {
		plans  PlanStore
		parser analysis.PlanParser
		log    *zap.Logger

		mu       sync.Mutex
		step     PlanStep
		previous PlanStep
		plan     *domain.NutritionPlan
		draft    *domain.CreatePlanRequest
		selected string
		err      string
	}
)

func NewPlanImport(plans PlanStore, parser analysis.PlanParser, log *zap.Logger) *PlanImport {
	return &PlanImport{plans: plans, parser: parser, log: log, step: PlanEmpty}
}

func (p *PlanImport) View() PlanImportView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view()
}

func (p *PlanImport) view() PlanImportView {
	v := PlanImportView{Step: p.step, SelectedTemplate: p.selected, Error: p.err}
	v.Subtitle = "Import your nutrition plan"
	if p.plan != nil {
		plan := *p.plan
		v.Plan = &plan
		v.Subtitle = "Your personalized nutrition plan"
	}
	if p.draft != nil {
		draft := *p.draft
		v.Draft = &draft
	}
	return v
}

// Load reads the active plan. It leaves an import in progress alone.
func (p *PlanImport) Load(ctx context.Context) (PlanImportView, error) {
	res, err := p.plans.GetPlan(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		return p.view(), err
	}
	p.plan = nil
	if res.HasPlan {
		p.plan = res.Plan
	}
	if p.step == PlanEmpty || p.step == PlanActive {
		p.step = PlanEmpty
		if p.plan != nil {
			p.step = PlanActive
		}
	}
	return p.view(), nil
}

// Import parses an uploaded document into a draft for review. A plan that
// cannot be read sends the flow back where it started.
func (p *PlanImport) Import(ctx context.Context, document []byte, mimeType string) (PlanImportView, error) {
	p.mu.Lock()
	if p.step != PlanEmpty && p.step != PlanActive {
		v := p.view()
		p.mu.Unlock()
		return v, ErrInvalidTransition
	}
	p.previous = p.step
	p.step = PlanImporting
	p.err = ""
	p.mu.Unlock()

	draft, err := p.parser.ParsePlan(ctx, document, mimeType)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.step != PlanImporting {
		return p.view(), nil
	}
	if err != nil {
		p.log.Warn("plan import failed", zap.Error(err))
		p.step = p.previous
		p.err = MessageParsePlanFailed
		if errors.Is(err, domain.ErrAnalysisNotEnabled) {
			p.err = err.Error()
		}
		return p.view(), nil
	}
	p.draft = &draft
	p.step = PlanReview
	return p.view(), nil
}

// SelectTemplate expands one meal template, or collapses it when it is
// already expanded.
func (p *PlanImport) SelectTemplate(mealType string) (PlanImportView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.step != PlanReview && p.step != PlanActive {
		return p.view(), ErrInvalidTransition
	}
	if p.selected == mealType {
		p.selected = ""
	} else {
		p.selected = mealType
	}
	return p.view(), nil
}

// Confirm commits the reviewed draft as the active plan.
func (p *PlanImport) Confirm(ctx context.Context) (PlanImportView, error) {
	p.mu.Lock()
	if p.step != PlanReview || p.draft == nil {
		v := p.view()
		p.mu.Unlock()
		return v, ErrInvalidTransition
	}
	draft := *p.draft
	p.mu.Unlock()

	if _, err := p.plans.CreatePlan(ctx, draft); err != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.err = domain.MessageFailedCreatePlan
		return p.view(), err
	}
	res, err := p.plans.GetPlan(ctx)
	if err != nil {
		p.log.Warn("failed to reload plan after import", zap.Error(err))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.step = PlanActive
	p.draft = nil
	p.selected = ""
	p.err = ""
	if err == nil && res.HasPlan {
		p.plan = res.Plan
	}
	v := p.view()
	v.Toast = successToast(MessagePlanActivated)
	return v, nil
}

// Discard drops the draft under review.
func (p *PlanImport) Discard() (PlanImportView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.step != PlanReview {
		return p.view(), ErrInvalidTransition
	}
	p.draft = nil
	p.selected = ""
	p.step = PlanEmpty
	if p.plan != nil {
		p.step = PlanActive
	}
	return p.view(), nil
}
