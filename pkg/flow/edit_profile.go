package flow

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils"
	"github.com/tanmald/plate-check-mvp/pkg/navigation"
)

type (
	ProfileEditor interface {
		GetProfile(ctx context.Context) (*domain.Profile, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.Profile, error)
	}

	IdentityReader interface {
		Identity() *domain.Identity
	}

	EditProfileView struct {
		Form              domain.EditProfileForm `json:"form"`
		Initials          string                 `json:"initials"`
		HasChanges        bool                   `json:"hasChanges"`
		Saving            bool                   `json:"saving"`
		DiscardDialogOpen bool                   `json:"discardDialogOpen"`
		Errors            map[string]string      `json:"errors,omitempty"`
		Effects
	}

	EditProfile struct {
		profiles ProfileEditor
		identity IdentityReader
		log      *zap.Logger

		mu          sync.Mutex
		form        domain.EditProfileForm
		original    domain.EditProfileForm
		saving      bool
		discardOpen bool
		errors      map[string]string
	}
)

func NewEditProfile(profiles ProfileEditor, identity IdentityReader, log *zap.Logger) *EditProfile {
	return &EditProfile{profiles: profiles, identity: identity, log: log}
}

func (e *EditProfile) View() EditProfileView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view()
}

func (e *EditProfile) view() EditProfileView {
	v := EditProfileView{
		Form:              e.form,
		Initials:          Initials(e.form.FullName, e.form.Email),
		HasChanges:        e.form != e.original,
		Saving:            e.saving,
		DiscardDialogOpen: e.discardOpen,
	}
	if len(e.errors) > 0 {
		v.Errors = make(map[string]string, len(e.errors))
		for k, msg := range e.errors {
			v.Errors[k] = msg
		}
	}
	return v
}

// Load fills the form from the stored profile, falling back to the signed-in
// address when the profile has none.
func (e *EditProfile) Load(ctx context.Context) (EditProfileView, error) {
	profile, err := e.profiles.GetProfile(ctx)
	if err != nil {
		e.log.Warn("editing without a stored profile", zap.Error(err))
	}

	var form domain.EditProfileForm
	if profile != nil {
		form.Email = profile.Email
		if profile.FullName != nil {
			form.FullName = *profile.FullName
		}
	}
	if form.Email == "" {
		if identity := e.identity.Identity(); identity != nil {
			form.Email = identity.Email
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.form, e.original = form, form
	e.errors = nil
	e.discardOpen = false
	return e.view(), nil
}

func (e *EditProfile) Change(form domain.EditProfileForm) EditProfileView {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = form
	return e.view()
}

func (e *EditProfile) Save(ctx context.Context) (EditProfileView, error) {
	e.mu.Lock()
	if e.saving {
		v := e.view()
		e.mu.Unlock()
		return v, ErrFlowBusy
	}
	e.errors = nil
	if err := utils.Validate.Struct(e.form); err != nil {
		e.errors = utils.ValidationErrors(err)
		v := e.view()
		e.mu.Unlock()
		return v, nil
	}
	e.saving = true
	form := e.form
	e.mu.Unlock()

	_, err := e.profiles.UpdateProfile(ctx, domain.UpdateProfileRequest{Email: form.Email, FullName: form.FullName})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false

	if err != nil {
		e.log.Error("failed to update profile", zap.Error(err))
		e.errors = map[string]string{"general": domain.MessageFailedUpdateProfile}
		return e.view(), nil
	}
	e.original = form
	v := e.view()
	v.Toast = successToast(domain.MessageSuccessUpdateProfile)
	v.Navigate = navigation.Back()
	return v, nil
}

// Back leaves the screen, or asks first when there are unsaved changes.
func (e *EditProfile) Back() EditProfileView {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.form != e.original {
		e.discardOpen = true
		return e.view()
	}
	v := e.view()
	v.Navigate = navigation.Back()
	return v
}

func (e *EditProfile) Discard() (EditProfileView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.discardOpen {
		return e.view(), ErrInvalidTransition
	}
	e.discardOpen = false
	e.form = e.original
	e.errors = nil
	v := e.view()
	v.Navigate = navigation.Back()
	return v, nil
}

func (e *EditProfile) KeepEditing() EditProfileView {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discardOpen = false
	return e.view()
}

// Initials are the first letters of up to two name words, else the first
// letter of the email, else "U".
func Initials(fullName, email string) string {
	if fullName != "" {
		var b strings.Builder
		for _, word := range strings.Split(fullName, " ") {
			if word == "" {
				continue
			}
			b.WriteString(strings.ToUpper(string([]rune(word)[0])))
		}
		initials := []rune(b.String())
		if len(initials) > 2 {
			initials = initials[:2]
		}
		return string(initials)
	}
	if email != "" {
		return strings.ToUpper(string([]rune(email)[0]))
	}
	return "U"
}
