package domain

import (
	"errors"
)

var (
	MessageSuccessAnalyzeMeal = "meal analyzed successfully"
	MessageSuccessParsePlan   = "plan parsed successfully"

	MessageFailedAnalyzeMeal = "failed to analyze meal"
	MessageFailedParsePlan   = "failed to parse plan"

	ErrAnalysisFailed     = errors.New("meal analysis failed")
	ErrPlanParsingFailed  = errors.New("plan parsing failed")
	ErrAnalysisNotEnabled = errors.New("analysis service is not configured")
	ErrInvalidImageFormat = errors.New("invalid image format")
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

const (
	StatusOnPlan         = "On plan"
	StatusNeedsAttention = "Needs attention"
	StatusOffPlan        = "Off plan"
)

type (
	DetectedFood struct {
		Name     string `json:"name"`
		Matched  bool   `json:"matched"`
		Category string `json:"category"`
	}

	Suggestion struct {
		Food        string `json:"food"`
		Replacement string `json:"replacement"`
		Reason      string `json:"reason"`
	}

	MealAnalysis struct {
		MealName      string         `json:"mealName,omitempty"`
		Score         int            `json:"score"`
		Status        string         `json:"status"`
		Confidence    Confidence     `json:"confidence"`
		DetectedFoods []DetectedFood `json:"detectedFoods"`
		Feedback      string         `json:"feedback"`
		Suggestions   []Suggestion   `json:"suggestions"`
	}

	ConfidenceInfo struct {
		Label string `json:"label"`
		Tone  string `json:"tone"`
	}
)

func StatusLabel(score int) string {
	if score >= OnPlanThreshold {
		return StatusOnPlan
	}
	if score >= 40 {
		return StatusNeedsAttention
	}
	return StatusOffPlan
}

func ConfidenceLabel(c Confidence) ConfidenceInfo {
	switch c {
	case ConfidenceHigh:
		return ConfidenceInfo{Label: "High confidence", Tone: "success"}
	case ConfidenceMedium:
		return ConfidenceInfo{Label: "Medium confidence", Tone: "warning"}
	default:
		return ConfidenceInfo{Label: "Low confidence", Tone: "muted"}
	}
}

// FoodNames lists the detected food names in detection order.
func (a MealAnalysis) FoodNames() []string {
	names := make([]string, 0, len(a.DetectedFoods))
	for _, f := range a.DetectedFoods {
		names = append(names, f.Name)
	}
	return names
}
