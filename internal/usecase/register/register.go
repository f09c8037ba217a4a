package register

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ghaniswara/workmatch/internal/api"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/pkg/validator"
)

const (
	DefaultRedirectDelay = 2 * time.Second

	SuccessMessage = "Registration successful! Please log in."
	FailedMessage  = "Registration failed"
)

var (
	ErrInvalid     = errors.New("registration form is invalid")
	ErrSubmitting  = errors.New("registration already in progress")
	ErrNotComplete = errors.New("registration has not succeeded")
)

type Registrar interface {
	Register(ctx context.Context, req entity.SignUpRequest) error
}

// NewForm returns an empty form with the default self gender and the
// opposite gender as the initial interest.
func NewForm() entity.SignUpRequest {
	return entity.SignUpRequest{
		Gender:              entity.GenderMale,
		InterestedInGenders: []entity.Gender{entity.GenderFemale},
	}
}

type View struct {
	registrar     Registrar
	RedirectDelay time.Duration

	mu         sync.Mutex
	form       entity.SignUpRequest
	errMsg     string
	success    string
	submitting bool
}

func New(registrar Registrar) *View {
	return &View{
		registrar:     registrar,
		RedirectDelay: DefaultRedirectDelay,
		form:          NewForm(),
	}
}

func (v *View) Form() entity.SignUpRequest {
	v.mu.Lock()
	defer v.mu.Unlock()

	f := v.form
	f.InterestedInGenders = append([]entity.Gender{}, v.form.InterestedInGenders...)
	return f
}

func (v *View) UpdateForm(fn func(*entity.SignUpRequest)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.form)
}

func (v *View) ToggleInterest(g entity.Gender) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.InterestedInGenders = entity.ToggleGender(v.form.InterestedInGenders, g)
}

// Submit validates the form locally and sends it once. On failure the
// backend's message (or a generic fallback) is kept in Error and the form is
// left untouched.
func (v *View) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.submitting {
		v.mu.Unlock()
		return ErrSubmitting
	}
	v.submitting = true
	v.errMsg = ""
	v.success = ""
	form := v.form
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.submitting = false
		v.mu.Unlock()
	}()

	if problems := form.Validate(ctx); len(problems) > 0 {
		v.setError(validator.First(problems))
		return ErrInvalid
	}

	if err := v.registrar.Register(ctx, form); err != nil {
		v.setError(api.ErrorMessage(err, FailedMessage))
		return err
	}

	v.mu.Lock()
	v.success = SuccessMessage
	v.mu.Unlock()
	return nil
}

func (v *View) setError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errMsg = msg
}

func (v *View) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

func (v *View) Success() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.success
}

// WaitRedirect blocks for RedirectDelay after a successful submit, after
// which the caller moves on to sign-in.
func (v *View) WaitRedirect(ctx context.Context) error {
	if v.Success() == "" {
		return ErrNotComplete
	}

	t := time.NewTimer(v.RedirectDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
