package domain

import (
	"errors"
)

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"

	// OnPlanThreshold is the adherence score a day or a meal needs to count
	// as on plan.
	OnPlanThreshold = 70
	// ExpectedMealsPerDay is the number of meals a day of the plan expects.
	ExpectedMealsPerDay = 4

	DateLayout = "2006-01-02"
)

var (
	MessageSuccessPing          = "pong"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedValidation     = "validation failed"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID       = errors.New("failed to parse UUID")
	ErrNoIdentity      = errors.New("no user logged in")
	ErrTokenNotFound   = errors.New("failed to token not found")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMealType = errors.New("invalid meal type")
)

var MealTypes = []string{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

func IsMealType(mealType string) bool {
	for _, t := range MealTypes {
		if t == mealType {
			return true
		}
	}
	return false
}
