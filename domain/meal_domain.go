package domain

import (
	"errors"
)

var (
	MessageSuccessGetMeals = "meals retrieved successfully"
	MessageSuccessSaveMeal = "meal saved successfully"

	MessageFailedGetMeals = "failed to retrieve meals"
	MessageFailedSaveMeal = "failed to save meal"

	ErrMealAnalysisMissing = errors.New("meal analysis is required")
)

const DefaultMealName = "Meal"

type (
	Meal struct {
		ID       string   `json:"id"`
		Type     string   `json:"type"`
		Name     string   `json:"name"`
		Time     string   `json:"time"`
		Score    int      `json:"score"`
		ImageURL string   `json:"imageUrl,omitempty"`
		Foods    []string `json:"foods"`
		Feedback string   `json:"feedback,omitempty"`
	}

	SaveMealRequest struct {
		MealType string        `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
		MealName string        `json:"meal_name"`
		PhotoURL string        `json:"photo_url" validate:"omitempty,url"`
		Analysis *MealAnalysis `json:"analysis" validate:"required"`
	}

	SavedMeal struct {
		ID       string `json:"id"`
		MealType string `json:"meal_type"`
		Score    int    `json:"score"`
	}
)
