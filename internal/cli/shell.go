package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ghaniswara/workmatch/internal/api"
)

// Shell reads commands until exit or end of input. Command errors are printed
// and the loop continues.
func (a *App) Shell(ctx context.Context) error {
	a.printf("workmatch: type `help` for commands, `exit` to leave.\n")

	for {
		a.printf("%s", a.navbar())

		line, err := a.readLine()
		if errors.Is(err, io.EOF) {
			a.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name, args := fields[0], fields[1:]
		switch name {
		case "exit", "quit":
			return nil
		case "shell":
			continue
		case "serve":
			a.printf("Run `workmatch serve` in another terminal.\n")
			continue
		}

		var shown shownError
		err = a.Run(ctx, name, args)
		switch {
		case err == nil, errors.As(err, &shown):
		case ctx.Err() != nil:
			return ctx.Err()
		case isSignedOut(err):
			a.printf("Please sign in first: login [username]\n")
		default:
			a.printf("error: %s\n", api.ErrorMessage(err, err.Error()))
		}
	}
}

// navbar is the prompt, showing who is signed in.
func (a *App) navbar() string {
	user, ok := a.session.User()
	if !ok {
		return "workmatch (signed out)> "
	}
	return "workmatch (" + user.FirstName + ")> "
}
