package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
)

const planPrompt = "Read this nutrition plan document and respond ONLY with a valid JSON object containing: " +
	"'name' (string), 'source' (string, the clinic or author, empty if unknown) and 'templates' " +
	"(array of {'type' one of breakfast, lunch, dinner, snack; 'name'; 'requiredFoods' array of strings; " +
	"'allowedFoods' array of strings; 'calories' as \"min-max\"; 'protein' as \"min-maxg\"}). " +
	"Do not include any explanations, markdown formatting, or extra text."

type (
	PlanParser interface {
		ParsePlan(ctx context.Context, document []byte, mimeType string) (domain.CreatePlanRequest, error)
	}

	geminiPlanParser struct {
		client *geminiClient
		log    *zap.Logger
	}
)

func NewPlanParser(cfg GeminiConfig, log *zap.Logger) PlanParser {
	return &geminiPlanParser{client: newGeminiClient(cfg, log), log: log}
}

func (p *geminiPlanParser) ParsePlan(ctx context.Context, document []byte, mimeType string) (domain.CreatePlanRequest, error) {
	if len(document) == 0 {
		return domain.CreatePlanRequest{}, domain.ErrPlanParsingFailed
	}

	text, err := p.client.generate(ctx, planPrompt, document, mimeType)
	if err != nil {
		if errors.Is(err, domain.ErrAnalysisNotEnabled) {
			return domain.CreatePlanRequest{}, err
		}
		p.log.Error("plan parsing request failed", zap.Error(err))
		return domain.CreatePlanRequest{}, errors.Join(domain.ErrPlanParsingFailed, err)
	}

	var draft domain.CreatePlanRequest
	if err := json.Unmarshal([]byte(cleanJSON(text)), &draft); err != nil {
		return domain.CreatePlanRequest{}, fmt.Errorf("%w: %v", domain.ErrPlanParsingFailed, err)
	}
	return normalizePlan(draft)
}

// normalizePlan drops templates of unknown meal types and rewrites the
// targets in their canonical form.
func normalizePlan(draft domain.CreatePlanRequest) (domain.CreatePlanRequest, error) {
	templates := make([]domain.PlanTemplateRequest, 0, len(draft.Templates))
	for _, t := range draft.Templates {
		t.Type = strings.ToLower(strings.TrimSpace(t.Type))
		if !domain.IsMealType(t.Type) {
			continue
		}
		if t.Name == "" {
			t.Name = strings.ToUpper(t.Type[:1]) + t.Type[1:]
		}
		if t.RequiredFoods == nil {
			t.RequiredFoods = []string{}
		}
		if t.AllowedFoods == nil {
			t.AllowedFoods = []string{}
		}
		t.Calories = domain.ParseRange(t.Calories).String()
		t.Protein = domain.ParseRange(t.Protein).Grams()
		templates = append(templates, t)
	}
	if len(templates) == 0 {
		return domain.CreatePlanRequest{}, domain.ErrPlanTemplateEmpty
	}

	draft.Templates = templates
	if strings.TrimSpace(draft.Name) == "" {
		draft.Name = "My Nutrition Plan"
	}
	if draft.Source == "" {
		draft.Source = domain.DefaultPlanSource
	}
	return draft, nil
}
