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

type (
	AnalyzeRequest struct {
		Photo    []byte
		MimeType string
		MealType string
		Template *domain.MealTemplate
	}

	Analyzer interface {
		AnalyzeMeal(ctx context.Context, req AnalyzeRequest) (domain.MealAnalysis, error)
	}

	geminiAnalyzer struct {
		client *geminiClient
		log    *zap.Logger
	}
)

func NewAnalyzer(cfg GeminiConfig, log *zap.Logger) Analyzer {
	return &geminiAnalyzer{client: newGeminiClient(cfg, log), log: log}
}

func (a *geminiAnalyzer) AnalyzeMeal(ctx context.Context, req AnalyzeRequest) (domain.MealAnalysis, error) {
	if len(req.Photo) == 0 {
		return domain.MealAnalysis{}, domain.ErrInvalidImageFormat
	}

	text, err := a.client.generate(ctx, mealPrompt(req), req.Photo, req.MimeType)
	if err != nil {
		if errors.Is(err, domain.ErrAnalysisNotEnabled) {
			return domain.MealAnalysis{}, err
		}
		a.log.Error("meal analysis request failed", zap.String("meal_type", req.MealType), zap.Error(err))
		return domain.MealAnalysis{}, errors.Join(domain.ErrAnalysisFailed, err)
	}

	var result domain.MealAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(text)), &result); err != nil {
		return domain.MealAnalysis{}, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}
	return normalizeAnalysis(result), nil
}

func mealPrompt(req AnalyzeRequest) string {
	var b strings.Builder
	b.WriteString("You check meal photos against a nutrition plan. ")
	fmt.Fprintf(&b, "The photo is the user's %s. ", req.MealType)
	if t := req.Template; t != nil {
		fmt.Fprintf(&b, "The plan's %s template requires: %s. ", t.Name, strings.Join(t.RequiredFoods, ", "))
		fmt.Fprintf(&b, "Allowed foods: %s. ", strings.Join(t.AllowedFoods, ", "))
		fmt.Fprintf(&b, "Targets: %s kcal, %s protein. ", t.Calories, t.Protein)
	} else {
		b.WriteString("There is no template for this meal, judge general balance. ")
	}
	b.WriteString("Respond ONLY with a valid JSON object with exactly these fields: ")
	b.WriteString("'mealName' (string), 'score' (integer 0-100 adherence), ")
	b.WriteString("'confidence' ('high', 'medium' or 'low'), ")
	b.WriteString("'detectedFoods' (array of {'name', 'matched' boolean, 'category'}), ")
	b.WriteString("'feedback' (string), ")
	b.WriteString("'suggestions' (array of {'food', 'replacement', 'reason'}). ")
	b.WriteString("Do not include any explanations, markdown formatting, or extra text.")
	return b.String()
}

// normalizeAnalysis clamps the score, derives the status from it and fills
// empty lists so the result renders as is.
func normalizeAnalysis(a domain.MealAnalysis) domain.MealAnalysis {
	if a.Score < 0 {
		a.Score = 0
	}
	if a.Score > 100 {
		a.Score = 100
	}
	a.Status = domain.StatusLabel(a.Score)

	switch domain.Confidence(strings.ToLower(string(a.Confidence))) {
	case domain.ConfidenceHigh:
		a.Confidence = domain.ConfidenceHigh
	case domain.ConfidenceMedium:
		a.Confidence = domain.ConfidenceMedium
	default:
		a.Confidence = domain.ConfidenceLow
	}

	if a.DetectedFoods == nil {
		a.DetectedFoods = []domain.DetectedFood{}
	}
	if a.Suggestions == nil {
		a.Suggestions = []domain.Suggestion{}
	}
	return a
}
