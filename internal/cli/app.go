// Package cli is the terminal front end. Each view of the client maps to a
// command; the shell command runs them interactively.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ghaniswara/workmatch/internal/api"
	"github.com/ghaniswara/workmatch/internal/config"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/internal/usecase/session"
)

var (
	ErrSignedOut      = errors.New("not signed in, run `login` first")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// shownError marks an error the command has already reported to the user.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

type command struct {
	usage string
	help  string
	// auth commands refuse to run without a signed-in user.
	auth bool
	run  func(ctx context.Context, args []string) error
}

type App struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Session

	in *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	commands map[string]command
}

func New(cfg *config.Config, client *api.Client, sess *session.Session, in io.Reader, out io.Writer) *App {
	a := &App{
		cfg:     cfg,
		client:  client,
		session: sess,
		in:      bufio.NewReader(in),
		out:     out,
	}

	a.commands = map[string]command{
		"login":    {usage: "login [username] [password]", help: "sign in", run: a.login},
		"logout":   {usage: "logout", help: "forget the stored token", run: a.logout},
		"whoami":   {usage: "whoami", help: "show the signed-in user", run: a.whoami},
		"register": {usage: "register", help: "create an account", run: a.register},
		"profile":  {usage: "profile [edit]", help: "show or edit your profile", auth: true, run: a.profile},
		"discover": {usage: "discover", help: "browse candidates and like or pass", auth: true, run: a.discover},
		"matches":  {usage: "matches", help: "list your matches", auth: true, run: a.matches},
		"pending":  {usage: "pending", help: "list likes waiting for your answer", auth: true, run: a.pending},
		"unread":   {usage: "unread", help: "list unread messages by sender", auth: true, run: a.unread},
		"chat":     {usage: "chat <userId>", help: "open a conversation", auth: true, run: a.chat},
		"health":   {usage: "health", help: "check the backend", run: a.health},
	}
	return a
}

// Run executes one command. The session must be initialized first; Run waits
// for that before dispatching.
func (a *App) Run(ctx context.Context, name string, args []string) error {
	select {
	case <-a.session.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	if name == "" || name == "shell" {
		return a.Shell(ctx)
	}
	if name == "help" {
		a.help()
		return nil
	}

	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w %q, try `help`", ErrUnknownCommand, name)
	}
	if cmd.auth && !a.session.SignedIn() {
		return ErrSignedOut
	}

	logger.Debug("command", "name", name, "args", len(args))
	return cmd.run(ctx, args)
}

func (a *App) help() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	a.printf("Commands:\n")
	for _, name := range names {
		cmd := a.commands[name]
		a.printf("  %-28s %s\n", cmd.usage, cmd.help)
	}
	a.printf("  %-28s %s\n", "shell", "interactive mode (default)")
	a.printf("  %-28s %s\n", "serve", "run the local backend")
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// readLine returns the next input line without its newline. io.EOF is only
// returned when nothing was read.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prompts for a value. An empty answer keeps def.
func (a *App) ask(label, def string) (string, error) {
	if def != "" {
		a.printf("%s [%s]: ", label, def)
	} else {
		a.printf("%s: ", label)
	}

	line, err := a.readLine()
	if err != nil {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return def, nil
	}
	return line, nil
}

func (a *App) confirm(label string) (bool, error) {
	answer, err := a.ask(label+" [y/N]", "")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (a *App) duration(key string, def time.Duration) time.Duration {
	if a.cfg == nil {
		return def
	}
	if d := a.cfg.GetDuration(key); d > 0 {
		return d
	}
	return def
}
