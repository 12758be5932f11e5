package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils/storage"
	"github.com/tanmald/plate-check-mvp/pkg/fixtures"
	"github.com/tanmald/plate-check-mvp/pkg/navigation"
)

var photo = []byte("\xff\xd8\xff\xe0 jpeg bytes")

func TestCapture_HappyPath(t *testing.T) {
	data := &fakeData{plan: domain.PlanResult{Plan: fixtures.Plan(), HasPlan: true}}
	uploader := &fakeUploader{url: "https://bucket.s3.eu-west-1.amazonaws.com/meals/a.jpg"}
	analyzer := &fakeAnalyzer{result: fixtures.MealResult()}
	c := NewCapture(data, uploader, analyzer, zaptest.NewLogger(t))

	v := c.View()
	assert.Equal(t, CaptureSelect, v.Step)
	assert.Len(t, v.Options, 4)
	assert.Equal(t, "What meal are you logging?", v.Subtitle)

	v, err := c.Select(domain.MealTypeLunch)
	require.NoError(t, err)
	assert.Equal(t, CaptureCapture, v.Step)
	assert.Equal(t, "Capture your lunch", v.Subtitle)

	v, err = c.Capture(context.Background(), photo, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, CaptureResult, v.Step)
	assert.Equal(t, "meals", uploader.folder)
	require.NotNil(t, analyzer.got.Template)
	assert.Equal(t, "Lunch", analyzer.got.Template.Name)
	assert.Equal(t, navigation.RouteMealResult, v.Navigate.Route)
	assert.Equal(t, domain.MealTypeLunch, v.Navigate.State["mealType"])
	assert.Equal(t, domain.StatusOnPlan, v.StatusLabel)
	assert.Equal(t, "High confidence", v.Confidence.Label)

	v, err = c.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CaptureSelect, v.Step)
	assert.Equal(t, navigation.RouteHome, v.Navigate.Route)
	assert.Equal(t, MessageMealSaved, v.Toast.Description)

	require.Len(t, data.saved, 1)
	assert.Equal(t, domain.MealTypeLunch, data.saved[0].MealType)
	assert.Equal(t, uploader.url, data.saved[0].PhotoURL)
	assert.Equal(t, 78, data.saved[0].Analysis.Score)
}

func TestCapture_BackClearsCategory(t *testing.T) {
	c := NewCapture(&fakeData{}, nil, &fakeAnalyzer{}, zaptest.NewLogger(t))

	_, err := c.Back()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, _ = c.Select(domain.MealTypeDinner)
	v, err := c.Back()

	require.NoError(t, err)
	assert.Equal(t, CaptureSelect, v.Step)
	assert.Empty(t, v.MealType)
}

func TestCapture_RejectsUnknownCategory(t *testing.T) {
	c := NewCapture(&fakeData{}, nil, &fakeAnalyzer{}, zaptest.NewLogger(t))

	v, err := c.Select("brunch")

	assert.ErrorIs(t, err, domain.ErrInvalidMealType)
	assert.Equal(t, CaptureSelect, v.Step)
}

func TestCapture_AnalysisFailureReturnsToCapture(t *testing.T) {
	analyzer := &fakeAnalyzer{err: domain.ErrAnalysisFailed}
	c := NewCapture(&fakeData{}, nil, analyzer, zaptest.NewLogger(t))
	_, _ = c.Select(domain.MealTypeSnack)

	v, err := c.Capture(context.Background(), photo, "")

	require.NoError(t, err)
	assert.Equal(t, CaptureCapture, v.Step)
	assert.Equal(t, domain.MealTypeSnack, v.MealType)
	assert.Equal(t, MessageAnalyzeFailed, v.Error)
	assert.Nil(t, analyzer.got.Template)
}

func TestCapture_UploadRules(t *testing.T) {
	c := NewCapture(&fakeData{}, &fakeUploader{err: storage.ErrFileTypeNotAllowed}, &fakeAnalyzer{}, zaptest.NewLogger(t))
	_, _ = c.Select(domain.MealTypeSnack)

	v, _ := c.Capture(context.Background(), []byte("GIF89a"), "")
	assert.Equal(t, CaptureCapture, v.Step)
	assert.Equal(t, MessagePhotoType, v.Error)

	disabled := NewCapture(&fakeData{}, &fakeUploader{err: storage.ErrStorageDisabled}, &fakeAnalyzer{result: fixtures.MealResult()}, zaptest.NewLogger(t))
	_, _ = disabled.Select(domain.MealTypeSnack)

	v, err := disabled.Capture(context.Background(), photo, "")
	require.NoError(t, err)
	assert.Equal(t, CaptureResult, v.Step)
	assert.Empty(t, v.PhotoURL)
}

func TestCapture_ResetDropsRunningAnalysis(t *testing.T) {
	analyzer := &fakeAnalyzer{result: fixtures.MealResult(), gate: make(chan struct{})}
	c := NewCapture(&fakeData{}, nil, analyzer, zaptest.NewLogger(t))
	_, _ = c.Select(domain.MealTypeBreakfast)

	done := make(chan CaptureView)
	go func() {
		v, _ := c.Capture(context.Background(), photo, "")
		done <- v
	}()
	require.Eventually(t, func() bool { return c.View().Step == CaptureAnalyzing }, time.Second, time.Millisecond)

	_, err := c.Back()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	c.Reset()
	close(analyzer.gate)
	v := <-done

	assert.Equal(t, CaptureSelect, v.Step)
	assert.Nil(t, v.Navigate)
}

func TestCapture_SaveFailureKeepsResult(t *testing.T) {
	data := &fakeData{saveErr: errors.New("insert failed")}
	c := NewCapture(data, nil, &fakeAnalyzer{result: fixtures.MealResult()}, zaptest.NewLogger(t))
	_, _ = c.Select(domain.MealTypeLunch)
	_, _ = c.Capture(context.Background(), photo, "")

	v, err := c.Save(context.Background())

	assert.Error(t, err)
	assert.Equal(t, CaptureResult, v.Step)
	assert.Equal(t, domain.MessageFailedSaveMeal, v.Error)
}

func TestCapture_Retake(t *testing.T) {
	c := NewCapture(&fakeData{}, nil, &fakeAnalyzer{result: fixtures.MealResult()}, zaptest.NewLogger(t))
	_, _ = c.Select(domain.MealTypeLunch)
	_, _ = c.Capture(context.Background(), photo, "")

	v, err := c.Retake()

	require.NoError(t, err)
	assert.Equal(t, CaptureSelect, v.Step)
	assert.Equal(t, navigation.RouteLog, v.Navigate.Route)
}
