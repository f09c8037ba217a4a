package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/ghaniswara/workmatch/internal/api"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/usecase/discover"
	"github.com/ghaniswara/workmatch/internal/usecase/matches"
	"github.com/ghaniswara/workmatch/internal/usecase/profile"
)

func (a *App) profile(ctx context.Context, args []string) error {
	view := profile.New(a.client.Users, a.session)
	view.FlashDuration = a.duration("FLASH_DURATION", profile.DefaultFlashDuration)

	user, _ := view.User()
	a.printf("%s", profileCard(user, time.Now()))

	if len(args) == 0 || args[0] != "edit" {
		return nil
	}

	if err := view.Edit(); err != nil {
		return err
	}

	for {
		if err := a.fillProfile(view); err != nil {
			view.Cancel()
			return err
		}

		err := view.Submit(ctx)
		a.printf("%s\n", view.Flash())
		if err == nil {
			return nil
		}

		retry, promptErr := a.confirm("Try again?")
		if promptErr != nil || !retry {
			view.Cancel()
			return shownError{err}
		}
	}
}

func (a *App) fillProfile(view *profile.View) error {
	form := view.Form()

	fields := []struct {
		label string
		value *string
	}{
		{"First name", &form.FirstName},
		{"Last name", &form.LastName},
		{"Bio", &form.Bio},
		{"Department", &form.Department},
		{"Job title", &form.JobTitle},
		{"Profile image URL", &form.ProfileImageURL},
	}
	for _, f := range fields {
		v, err := a.ask(f.label, *f.value)
		if err != nil {
			return err
		}
		*f.value = v
	}

	view.UpdateForm(func(r *entity.UpdateProfileRequest) { *r = form })

	return a.toggleLoop(func() []entity.Gender { return view.Form().InterestedInGenders }, view.ToggleInterest)
}

func (a *App) discover(ctx context.Context, _ []string) error {
	deck := discover.New(a.client.Users, a.client.Matches)
	deck.FlashDuration = a.duration("FLASH_DURATION", discover.DefaultFlashDuration)

	if err := deck.Load(ctx); err != nil {
		a.printf("Could not load profiles: %s\n", api.ErrorMessage(err, err.Error()))
	}

	var shown string
	for {
		if flash := deck.Flash(); flash != shown {
			if flash != "" {
				a.printf("* %s\n", flash)
			}
			shown = flash
		}

		if deck.State() == discover.StateExhausted {
			a.printf("No more profiles to show right now.\n")
			answer, err := a.ask("[r]efresh or [q]uit", "q")
			if err != nil || !strings.HasPrefix(answer, "r") {
				return ignoreEOF(err)
			}
			if err := deck.Refresh(ctx); err != nil {
				a.printf("Could not load profiles: %s\n", api.ErrorMessage(err, err.Error()))
			}
			continue
		}

		current, _ := deck.Current()
		pos, total := deck.Position()
		a.printf("\n(%d/%d)\n%s", pos, total, card(current, time.Now()))

		answer, err := a.ask("[l]ike, [p]ass or [q]uit", "")
		if err != nil {
			return ignoreEOF(err)
		}

		switch {
		case strings.HasPrefix(answer, "l"):
			if _, _, err := deck.Like(ctx); err != nil {
				a.printf("Could not like %s: %s\n", current.FirstName, api.ErrorMessage(err, err.Error()))
			}
		case strings.HasPrefix(answer, "p"):
			if _, err := deck.Pass(ctx); err != nil {
				a.printf("Could not pass on %s: %s\n", current.FirstName, api.ErrorMessage(err, err.Error()))
			}
		case strings.HasPrefix(answer, "q"):
			return nil
		}
	}
}

func (a *App) lister() *matches.Lister {
	return matches.New(a.client.Matches, a.client.Messages, a.session)
}

func (a *App) matches(ctx context.Context, _ []string) error {
	list := a.lister().List(ctx)
	if len(list) == 0 {
		a.printf("No matches yet. Keep swiping!\n")
		return nil
	}

	a.printf("Your matches:\n")
	for _, e := range list {
		a.printf("%s", entryLine(e))
	}
	a.printf("Open a conversation with `chat <id>`.\n")
	return nil
}

func (a *App) pending(ctx context.Context, _ []string) error {
	list := a.lister().Pending(ctx)
	if len(list) == 0 {
		a.printf("No pending likes.\n")
		return nil
	}

	a.printf("They liked you:\n")
	for _, e := range list {
		a.printf("%s", entryLine(e))
	}
	return nil
}

func (a *App) unread(ctx context.Context, _ []string) error {
	inbox := a.lister().Unread(ctx)
	if len(inbox) == 0 {
		a.printf("No unread messages.\n")
		return nil
	}

	for _, box := range inbox {
		a.printf("#%d %s (%d unread)\n", box.From.ID, box.From.FullName(), len(box.Messages))
		for _, m := range box.Messages {
			a.printf("%s", messageLine(m, a.session.UserID()))
		}
	}
	return nil
}

func (a *App) health(ctx context.Context, _ []string) error {
	h, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	a.printf("%s %s: %s (%s)\n", h.Service, h.Version, h.Status, a.client.BaseURL())
	return nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
