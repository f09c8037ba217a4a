package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
)

const (
	DefaultFlashDuration = 3 * time.Second

	UpdatedMessage      = "Profile updated successfully!"
	UpdateFailedMessage = "Error updating profile"
)

var ErrSignedOut = errors.New("not signed in")

type ProfileAPI interface {
	UpdateProfile(ctx context.Context, req entity.UpdateProfileRequest) (*entity.User, error)
}

type UserSource interface {
	User() (entity.User, bool)
}

type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

type IProfileUseCase interface {
	Mode() Mode
	Edit() error
	Cancel()
	Form() entity.UpdateProfileRequest
	UpdateForm(func(*entity.UpdateProfileRequest))
	ToggleInterest(g entity.Gender)
	Submit(ctx context.Context) error
	Flash() string
}

var _ IProfileUseCase = (*View)(nil)

// View renders the session user read-only and edits it through a form. A
// successful submit does not refresh the session's cached user.
type View struct {
	api     ProfileAPI
	session UserSource

	FlashDuration time.Duration
	now           func() time.Time

	mu         sync.Mutex
	mode       Mode
	form       entity.UpdateProfileRequest
	flash      string
	flashUntil time.Time
}

func New(api ProfileAPI, session UserSource) *View {
	return &View{
		api:           api,
		session:       session,
		FlashDuration: DefaultFlashDuration,
		now:           time.Now,
	}
}

func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	return v
}

func (v *View) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// User is the session user shown in viewing mode.
func (v *View) User() (entity.User, bool) {
	return v.session.User()
}

func (v *View) Age() (int, bool) {
	u, ok := v.session.User()
	if !ok {
		return 0, false
	}
	return u.Age(v.now())
}

// Edit switches to editing with the form pre-populated from the session user.
func (v *View) Edit() error {
	u, ok := v.session.User()
	if !ok {
		return ErrSignedOut
	}

	interests := append([]entity.Gender{}, u.InterestedInGenders...)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.form = entity.UpdateProfileRequest{
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Bio:                 u.Bio,
		Department:          u.Department,
		JobTitle:            u.JobTitle,
		ProfileImageURL:     u.ProfileImageURL,
		InterestedInGenders: interests,
	}
	v.mode = ModeEditing
	return nil
}

func (v *View) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = ModeViewing
}

func (v *View) Form() entity.UpdateProfileRequest {
	v.mu.Lock()
	defer v.mu.Unlock()

	f := v.form
	f.InterestedInGenders = append([]entity.Gender{}, v.form.InterestedInGenders...)
	return f
}

func (v *View) UpdateForm(fn func(*entity.UpdateProfileRequest)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.form)
}

func (v *View) ToggleInterest(g entity.Gender) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.InterestedInGenders = entity.ToggleGender(v.form.InterestedInGenders, g)
}

// Submit sends the whole form. Success returns to viewing with a transient
// confirmation; failure stays in editing with an error message.
func (v *View) Submit(ctx context.Context) error {
	form := v.Form()

	if _, err := v.api.UpdateProfile(ctx, form); err != nil {
		logger.Error("update profile", "error", err)
		v.setFlash(UpdateFailedMessage, false)
		return fmt.Errorf("update profile: %w", err)
	}

	v.mu.Lock()
	v.mode = ModeViewing
	v.mu.Unlock()

	v.setFlash(UpdatedMessage, true)
	return nil
}

func (v *View) setFlash(msg string, transient bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.flash = msg
	v.flashUntil = time.Time{}
	if transient {
		v.flashUntil = v.now().Add(v.FlashDuration)
	}
}

func (v *View) Flash() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.flashUntil.IsZero() && !v.now().Before(v.flashUntil) {
		v.flash = ""
		v.flashUntil = time.Time{}
	}
	return v.flash
}
