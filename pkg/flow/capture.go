package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils/storage"
	"github.com/tanmald/plate-check-mvp/pkg/analysis"
	"github.com/tanmald/plate-check-mvp/pkg/navigation"
)

type CaptureStep string

const (
	CaptureSelect    CaptureStep = "select"
	CaptureCapture   CaptureStep = "capture"
	CaptureAnalyzing CaptureStep = "analyzing"
	CaptureResult    CaptureStep = "result"
)

const photoFolder = "meals"

var (
	MessageAnalyzeFailed = "We couldn't analyze your meal. Please try again."
	MessagePhotoType     = "Please choose a JPEG, PNG, WebP or HEIC photo."
	MessageMealSaved     = "Meal saved"
)

type (
	MealOption struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Icon  string `json:"icon"`
		Time  string `json:"time"`
	}

	MealRecorder interface {
		GetPlan(ctx context.Context) (domain.PlanResult, error)
		SaveMeal(ctx context.Context, req domain.SaveMealRequest) (*domain.SavedMeal, error)
	}

	PhotoUploader interface {
		UploadBytes(ctx context.Context, fileName string, data []byte, folder string, allowedTypes ...string) (string, error)
	}

	CaptureView struct {
		Step        CaptureStep            `json:"step"`
		MealType    string                 `json:"mealType,omitempty"`
		Options     []MealOption           `json:"options,omitempty"`
		Subtitle    string                 `json:"subtitle"`
		PhotoURL    string                 `json:"photoUrl,omitempty"`
		Analysis    *domain.MealAnalysis   `json:"analysis,omitempty"`
		StatusLabel string                 `json:"statusLabel,omitempty"`
		Confidence  *domain.ConfidenceInfo `json:"confidence,omitempty"`
		Error       string                 `json:"error,omitempty"`
		Effects
	}

	Capture struct {
		meals    MealRecorder
		uploader PhotoUploader
		analyzer analysis.Analyzer
		log      *zap.Logger

		mu       sync.Mutex
		step     CaptureStep
		mealType string
		photoURL string
		result   *domain.MealAnalysis
		err      string
		attempt  int
	}
)

var MealOptions = []MealOption{
	{ID: domain.MealTypeBreakfast, Label: "Breakfast", Icon: domain.MealIcon(domain.MealTypeBreakfast), Time: "6:00 AM - 10:00 AM"},
	{ID: domain.MealTypeLunch, Label: "Lunch", Icon: domain.MealIcon(domain.MealTypeLunch), Time: "11:00 AM - 2:00 PM"},
	{ID: domain.MealTypeDinner, Label: "Dinner", Icon: domain.MealIcon(domain.MealTypeDinner), Time: "5:00 PM - 9:00 PM"},
	{ID: domain.MealTypeSnack, Label: "Snack", Icon: domain.MealIcon(domain.MealTypeSnack), Time: "Any time"},
}

// NewCapture builds the meal logging flow. uploader may be nil, in which
// case photos are analyzed but not stored.
func NewCapture(meals MealRecorder, uploader PhotoUploader, analyzer analysis.Analyzer, log *zap.Logger) *Capture {
	return &Capture{
		meals:    meals,
		uploader: uploader,
		analyzer: analyzer,
		log:      log,
		step:     CaptureSelect,
	}
}

func (c *Capture) View() CaptureView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

func (c *Capture) view() CaptureView {
	v := CaptureView{Step: c.step, MealType: c.mealType, PhotoURL: c.photoURL, Error: c.err}
	switch c.step {
	case CaptureSelect:
		v.Options = MealOptions
		v.Subtitle = "What meal are you logging?"
	case CaptureCapture:
		v.Subtitle = "Capture your " + c.mealType
	case CaptureAnalyzing:
		v.Subtitle = "Analyzing..."
	case CaptureResult:
		v.Subtitle = "Meal result"
		if c.result != nil {
			result := *c.result
			conf := domain.ConfidenceLabel(result.Confidence)
			v.Analysis = &result
			v.StatusLabel = domain.StatusLabel(result.Score)
			v.Confidence = &conf
		}
	}
	return v
}

func (c *Capture) reset() {
	c.step = CaptureSelect
	c.mealType = ""
	c.photoURL = ""
	c.result = nil
	c.err = ""
	c.attempt++
}

func (c *Capture) Select(mealType string) (CaptureView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != CaptureSelect {
		return c.view(), ErrInvalidTransition
	}
	if !domain.IsMealType(mealType) {
		return c.view(), domain.ErrInvalidMealType
	}
	c.mealType = mealType
	c.err = ""
	c.step = CaptureCapture
	return c.view(), nil
}

// Back leaves the capture step and forgets the chosen category.
func (c *Capture) Back() (CaptureView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != CaptureCapture {
		return c.view(), ErrInvalidTransition
	}
	c.reset()
	return c.view(), nil
}

// Capture stores the photo and has it analyzed against the plan template
// of the chosen category. On failure the flow returns to the capture step.
func (c *Capture) Capture(ctx context.Context, photo []byte, mimeType string) (CaptureView, error) {
	c.mu.Lock()
	if c.step != CaptureCapture {
		v := c.view()
		c.mu.Unlock()
		return v, ErrInvalidTransition
	}
	c.step = CaptureAnalyzing
	c.err = ""
	c.attempt++
	attempt, mealType := c.attempt, c.mealType
	c.mu.Unlock()

	photoURL, err := c.upload(ctx, photo)
	if err != nil {
		return c.fail(attempt, err)
	}

	result, err := c.analyzer.AnalyzeMeal(ctx, analysis.AnalyzeRequest{
		Photo:    photo,
		MimeType: mimeType,
		MealType: mealType,
		Template: c.template(ctx, mealType),
	})
	if err != nil {
		return c.fail(attempt, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt != attempt {
		return c.view(), nil
	}
	c.step = CaptureResult
	c.photoURL = photoURL
	c.result = &result

	v := c.view()
	v.Navigate = navigation.To(navigation.RouteMealResult).WithState("mealType", mealType)
	return v, nil
}

func (c *Capture) upload(ctx context.Context, photo []byte) (string, error) {
	if c.uploader == nil {
		return "", nil
	}
	url, err := c.uploader.UploadBytes(ctx, uuid.NewString(), photo, photoFolder, storage.AllowImage...)
	if errors.Is(err, storage.ErrStorageDisabled) {
		return "", nil
	}
	return url, err
}

func (c *Capture) template(ctx context.Context, mealType string) *domain.MealTemplate {
	res, err := c.meals.GetPlan(ctx)
	if err != nil {
		c.log.Warn("analyzing without a plan template", zap.Error(err))
		return nil
	}
	if !res.HasPlan || res.Plan == nil {
		return nil
	}
	for _, t := range res.Plan.Templates {
		if t.Type == mealType {
			t := t
			return &t
		}
	}
	return nil
}

func (c *Capture) fail(attempt int, err error) (CaptureView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt != attempt {
		return c.view(), nil
	}
	c.log.Warn("meal capture failed", zap.String("meal_type", c.mealType), zap.Error(err))
	c.step = CaptureCapture
	c.err = MessageAnalyzeFailed
	if errors.Is(err, storage.ErrFileTypeNotAllowed) || errors.Is(err, domain.ErrInvalidImageFormat) {
		c.err = MessagePhotoType
	}
	return c.view(), nil
}

// Save records the analyzed meal and goes home.
func (c *Capture) Save(ctx context.Context) (CaptureView, error) {
	c.mu.Lock()
	if c.step != CaptureResult || c.result == nil {
		v := c.view()
		c.mu.Unlock()
		return v, ErrInvalidTransition
	}
	req := domain.SaveMealRequest{
		MealType: c.mealType,
		MealName: c.result.MealName,
		PhotoURL: c.photoURL,
		Analysis: c.result,
	}
	c.mu.Unlock()

	_, err := c.meals.SaveMeal(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.log.Error("failed to save meal", zap.Error(err))
		c.err = domain.MessageFailedSaveMeal
		return c.view(), err
	}
	c.reset()
	v := c.view()
	v.Toast = successToast(MessageMealSaved)
	v.Navigate = navigation.To(navigation.RouteHome)
	return v, nil
}

// Retake throws the result away and starts over.
func (c *Capture) Retake() (CaptureView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != CaptureResult {
		return c.view(), ErrInvalidTransition
	}
	c.reset()
	v := c.view()
	v.Navigate = navigation.To(navigation.RouteLog)
	return v, nil
}

// Reset abandons the flow from any step. A running analysis finishes but
// its result is dropped.
func (c *Capture) Reset() CaptureView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	return c.view()
}
