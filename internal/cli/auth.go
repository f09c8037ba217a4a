package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ghaniswara/workmatch/internal/api"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/usecase/register"
)

const loginFailedMessage = "Invalid username or password"

func (a *App) login(ctx context.Context, args []string) error {
	var username, password string
	if len(args) > 0 {
		username = args[0]
	}
	if len(args) > 1 {
		password = args[1]
	}

	var err error
	if username == "" {
		if username, err = a.ask("Username", ""); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = a.ask("Password", ""); err != nil {
			return err
		}
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		a.printf("%s\n", api.ErrorMessage(err, loginFailedMessage))
		return shownError{err}
	}

	user, _ := a.session.User()
	a.printf("Welcome back, %s!\n", user.FirstName)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.printf("Signed out.\n")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	user, ok := a.session.User()
	if !ok {
		a.printf("Not signed in.\n")
		return nil
	}
	a.printf("%s (@%s)\n", user.FullName(), user.Username)
	return nil
}

func (a *App) register(ctx context.Context, _ []string) error {
	view := register.New(a.session)
	view.RedirectDelay = a.duration("REDIRECT_DELAY", register.DefaultRedirectDelay)

	for {
		if err := a.fillRegistration(view); err != nil {
			return err
		}

		err := view.Submit(ctx)
		if err == nil {
			break
		}
		a.printf("%s\n", view.Error())

		// Entered fields are kept, so a retry only needs corrections.
		retry, promptErr := a.confirm("Try again?")
		if promptErr != nil || !retry {
			return shownError{err}
		}
	}

	a.printf("%s\n", view.Success())
	if err := view.WaitRedirect(ctx); err != nil {
		return err
	}
	return a.login(ctx, []string{view.Form().Username})
}

func (a *App) fillRegistration(view *register.View) error {
	form := view.Form()

	fields := []struct {
		label string
		value *string
	}{
		{"Username", &form.Username},
		{"Email", &form.Email},
		{"Password", &form.Password},
		{"First name", &form.FirstName},
		{"Last name", &form.LastName},
		{"Birth date (YYYY-MM-DD, optional)", &form.BirthDate},
		{"Department (optional)", &form.Department},
		{"Job title (optional)", &form.JobTitle},
	}
	for _, f := range fields {
		v, err := a.ask(f.label, *f.value)
		if err != nil {
			return err
		}
		*f.value = v
	}

	gender, err := a.askGender("Gender", form.Gender)
	if err != nil {
		return err
	}
	form.Gender = gender

	view.UpdateForm(func(r *entity.SignUpRequest) { *r = form })

	return a.toggleLoop(func() []entity.Gender { return view.Form().InterestedInGenders }, view.ToggleInterest)
}

func (a *App) askGender(label string, def entity.Gender) (entity.Gender, error) {
	for {
		v, err := a.ask(fmt.Sprintf("%s (%s)", label, genders(entity.AllGenders())), string(def))
		if err != nil {
			return "", err
		}
		g := entity.Gender(strings.ToUpper(v))
		if g.Valid() {
			return g, nil
		}
		a.printf("Unknown gender %q\n", v)
	}
}

// toggleLoop lets the user flip genders in and out of an interest set until
// they enter a blank line.
func (a *App) toggleLoop(current func() []entity.Gender, toggle func(entity.Gender)) error {
	for {
		v, err := a.ask(fmt.Sprintf("Interested in [%s], toggle a gender or press enter", genders(current())), "")
		if err != nil {
			return err
		}
		if v == "" {
			return nil
		}

		g := entity.Gender(strings.ToUpper(v))
		if !g.Valid() {
			a.printf("Unknown gender %q\n", v)
			continue
		}
		toggle(g)
	}
}

func isSignedOut(err error) bool {
	return errors.Is(err, ErrSignedOut) || api.IsUnauthorized(err)
}
