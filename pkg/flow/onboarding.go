package flow

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils"
	"github.com/tanmald/plate-check-mvp/pkg/navigation"
)

type OnboardingStep string

const (
	StepValue1         OnboardingStep = "value1"
	StepValue2         OnboardingStep = "value2"
	StepValue3         OnboardingStep = "value3"
	StepWelcome        OnboardingStep = "welcome"
	StepSignUp         OnboardingStep = "signup"
	StepSignIn         OnboardingStep = "signin"
	StepForgotPassword OnboardingStep = "forgot-password"
	StepNoPlan         OnboardingStep = "no-plan"
)

// MessageConfirmEmail is shown when the backend wants the address confirmed
// before the first sign-in.
var MessageConfirmEmail = "Check your email to confirm your account"

var valueSteps = []OnboardingStep{StepValue1, StepValue2, StepValue3}

var authMoves = map[OnboardingStep][]OnboardingStep{
	StepWelcome:        {StepSignUp, StepSignIn, StepForgotPassword},
	StepSignUp:         {StepWelcome, StepSignIn},
	StepSignIn:         {StepWelcome, StepSignUp, StepForgotPassword},
	StepForgotPassword: {StepWelcome, StepSignIn},
}

type (
	Authenticator interface {
		SignUp(ctx context.Context, email, password string) (*domain.Session, error)
		SignIn(ctx context.Context, email, password string) (*domain.Session, error)
		ResetPassword(ctx context.Context, email string) error
	}

	OnboardingView struct {
		Step      OnboardingStep    `json:"step"`
		ValueStep int               `json:"valueStep,omitempty"`
		Loading   bool              `json:"loading"`
		Errors    map[string]string `json:"errors,omitempty"`
		Message   string            `json:"message,omitempty"`
		Effects
	}

	Onboarding struct {
		auth Authenticator
		log  *zap.Logger

		mu      sync.Mutex
		step    OnboardingStep
		loading bool
		errors  map[string]string
		message string
	}
)

func NewOnboarding(auth Authenticator, log *zap.Logger) *Onboarding {
	return &Onboarding{auth: auth, log: log, step: StepValue1}
}

func (o *Onboarding) View() OnboardingView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view()
}

func (o *Onboarding) view() OnboardingView {
	v := OnboardingView{Step: o.step, Loading: o.loading, Message: o.message}
	for i, s := range valueSteps {
		if s == o.step {
			v.ValueStep = i + 1
		}
	}
	if len(o.errors) > 0 {
		v.Errors = make(map[string]string, len(o.errors))
		for k, msg := range o.errors {
			v.Errors[k] = msg
		}
	}
	return v
}

func (o *Onboarding) moveTo(step OnboardingStep) {
	o.step = step
	o.errors = nil
	o.message = ""
}

// Continue walks the value screens and lands on welcome after the last.
func (o *Onboarding) Continue() (OnboardingView, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, s := range valueSteps {
		if s != o.step {
			continue
		}
		next := StepWelcome
		if i < len(valueSteps)-1 {
			next = valueSteps[i+1]
		}
		o.moveTo(next)
		return o.view(), nil
	}
	return o.view(), ErrInvalidTransition
}

func (o *Onboarding) Skip() (OnboardingView, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.view().ValueStep == 0 {
		return o.view(), ErrInvalidTransition
	}
	o.moveTo(StepWelcome)
	return o.view(), nil
}

// GoTo switches between the welcome screen and the account forms.
func (o *Onboarding) GoTo(step OnboardingStep) (OnboardingView, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.loading {
		return o.view(), ErrFlowBusy
	}
	for _, allowed := range authMoves[o.step] {
		if allowed == step {
			o.moveTo(step)
			return o.view(), nil
		}
	}
	return o.view(), ErrInvalidTransition
}

// begin validates form on the expected step and marks the flow loading.
// It reports false when the caller should return the view as is.
func (o *Onboarding) begin(step OnboardingStep, form interface{}) (OnboardingView, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step != step {
		return o.view(), false, ErrInvalidTransition
	}
	if o.loading {
		return o.view(), false, ErrFlowBusy
	}
	o.message = ""
	o.errors = nil
	if err := utils.Validate.Struct(form); err != nil {
		o.errors = utils.ValidationErrors(err)
		return o.view(), false, nil
	}
	o.loading = true
	return o.view(), true, nil
}

func (o *Onboarding) finish(err error) {
	o.loading = false
	if err != nil {
		o.log.Info("account request rejected", zap.String("step", string(o.step)), zap.Error(err))
		o.errors = map[string]string{"general": err.Error()}
	}
}

func (o *Onboarding) SignUp(ctx context.Context, req domain.SignUpRequest) (OnboardingView, error) {
	v, ok, err := o.begin(StepSignUp, req)
	if !ok {
		return v, err
	}

	s, err := o.auth.SignUp(ctx, req.Email, req.Password)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.finish(err)
	if err != nil {
		return o.view(), nil
	}
	o.moveTo(StepNoPlan)
	if s == nil {
		o.message = MessageConfirmEmail
	}
	return o.view(), nil
}

func (o *Onboarding) SignIn(ctx context.Context, req domain.SignInRequest) (OnboardingView, error) {
	v, ok, err := o.begin(StepSignIn, req)
	if !ok {
		return v, err
	}

	_, err = o.auth.SignIn(ctx, req.Email, req.Password)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.finish(err)
	if err != nil {
		return o.view(), nil
	}
	v = o.view()
	v.Navigate = navigation.To(navigation.RouteHome)
	return v, nil
}

func (o *Onboarding) ForgotPassword(ctx context.Context, req domain.ResetPasswordRequest) (OnboardingView, error) {
	v, ok, err := o.begin(StepForgotPassword, req)
	if !ok {
		return v, err
	}

	err = o.auth.ResetPassword(ctx, req.Email)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.finish(err)
	if err == nil {
		o.message = domain.MessageSuccessResetPassword
	}
	return o.view(), nil
}

// ImportPlan and CreateManually both lead to the plan screen.
func (o *Onboarding) ImportPlan() (OnboardingView, error) {
	return o.leave(navigation.RoutePlan)
}

func (o *Onboarding) CreateManually() (OnboardingView, error) {
	return o.leave(navigation.RoutePlan)
}

func (o *Onboarding) StartWithoutPlan() (OnboardingView, error) {
	return o.leave(navigation.RouteHome)
}

func (o *Onboarding) leave(route string) (OnboardingView, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step != StepNoPlan {
		return o.view(), ErrInvalidTransition
	}
	v := o.view()
	v.Navigate = navigation.To(route)
	return v, nil
}

// Restart puts the flow back on the first value screen.
func (o *Onboarding) Restart() OnboardingView {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loading = false
	o.moveTo(StepValue1)
	return o.view()
}
