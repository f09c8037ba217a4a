package internal_test

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghaniswara/workmatch/internal"
	"github.com/ghaniswara/workmatch/internal/api"
	"github.com/ghaniswara/workmatch/internal/backend"
	"github.com/ghaniswara/workmatch/internal/cli"
	"github.com/ghaniswara/workmatch/internal/config"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/tokenstore"
)

type harness struct {
	t         *testing.T
	url       string
	tokenFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg, err := config.NewConfig("")
	require.NoError(t, err)
	cfg.Set("DB_DRIVER", "sqlite")
	cfg.Set("DB_DSN", "file:"+t.Name()+"?mode=memory&cache=shared")
	cfg.Set("SEED_USERS", "0")

	srv, err := backend.NewServer(context.Background(), io.Discard, cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})

	tokenFile := filepath.Join(t.TempDir(), "token.json")
	t.Setenv("TOKEN_STORE", "file")
	t.Setenv("TOKEN_FILE", tokenFile)
	t.Setenv("REDIRECT_DELAY", "1ms")
	t.Setenv("POLL_INTERVAL", "50ms")
	t.Setenv("LOG_LEVEL", "error")

	return &harness{t: t, url: ts.URL + "/api", tokenFile: tokenFile}
}

// run executes one CLI invocation with the given stdin and returns stdout.
func (h *harness) run(input string, args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	argv := append([]string{"workmatch", "-api", h.url}, args...)
	err := internal.RunWithInput(context.Background(), strings.NewReader(input), &out, argv)
	return out.String(), err
}

// signUp creates an account directly through the API and returns a client
// signed in as that user.
func (h *harness) signUp(username string, gender entity.Gender, interests ...entity.Gender) (entity.User, *api.Client) {
	h.t.Helper()
	ctx := context.Background()

	store := tokenstore.NewMemoryStore()
	client := api.New(h.url, store)

	_, err := client.Auth.SignUp(ctx, entity.SignUpRequest{
		Username:            username,
		Email:               username + "@example.com",
		Password:            "secret1",
		FirstName:           strings.ToUpper(username[:1]) + username[1:],
		LastName:            "Tester",
		Gender:              gender,
		InterestedInGenders: interests,
	})
	require.NoError(h.t, err)

	auth, err := client.Auth.SignIn(ctx, username, "secret1")
	require.NoError(h.t, err)
	require.NoError(h.t, store.Set(ctx, auth.AccessToken))

	user, err := client.Users.GetProfile(ctx)
	require.NoError(h.t, err)
	return *user, client
}

func TestLoginPersistsAcrossRuns(t *testing.T) {
	h := newHarness(t)
	h.signUp("alice", entity.GenderFemale, entity.GenderMale)

	out, err := h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")

	out, err = h.run("", "login", "alice", "wrong")
	assert.True(t, api.IsUnauthorized(err))
	assert.Contains(t, out, "Invalid username or password")

	out, err = h.run("secret1\n", "login", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back, Alice!")

	_, err = os.Stat(h.tokenFile)
	require.NoError(t, err, "token must be persisted")

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Tester (@alice)")

	out, err = h.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")

	_, err = os.Stat(h.tokenFile)
	assert.True(t, os.IsNotExist(err))

	_, err = h.run("", "profile")
	assert.ErrorIs(t, err, cli.ErrSignedOut)
}

func TestCorruptTokenFileSignsOut(t *testing.T) {
	h := newHarness(t)
	h.signUp("alice", entity.GenderFemale, entity.GenderMale)
	require.NoError(t, os.WriteFile(h.tokenFile, []byte("{trunc"), 0o600))

	out, err := h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")

	out, err = h.run("", "login", "alice", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back, Alice!")
}

func TestRegisterThenLogin(t *testing.T) {
	h := newHarness(t)

	input := strings.Join([]string{
		"carol", "carol@example.com", "secret1", "Carol", "Danvers",
		"1985-03-02", "", "Pilot",
		"female",
		"", // keep the default interest
		"secret1",
	}, "\n") + "\n"

	out, err := h.run(input, "register")
	require.NoError(t, err)
	assert.Contains(t, out, "Registration successful! Please log in.")
	assert.Contains(t, out, "Welcome back, Carol!")

	out, err = h.run("", "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "Carol Danvers")
	assert.Contains(t, out, "Pilot")
	assert.Contains(t, out, "gender:      FEMALE")
	assert.Contains(t, out, "interested:  FEMALE")
}

func TestRegisterShowsBackendError(t *testing.T) {
	h := newHarness(t)
	h.signUp("dana", entity.GenderFemale, entity.GenderMale)

	input := strings.Join([]string{
		"dana", "dana2@example.com", "secret1", "Dana", "Scully", "", "", "",
		"", "",
		"n",
	}, "\n") + "\n"

	out, err := h.run(input, "register")
	require.Error(t, err)
	assert.Contains(t, out, "Username is already taken!")
}

func TestDiscoverMatchAndChat(t *testing.T) {
	h := newHarness(t)
	alice, _ := h.signUp("alice", entity.GenderFemale, entity.GenderMale)
	bob, bobClient := h.signUp("bob", entity.GenderMale, entity.GenderFemale)
	ctx := context.Background()

	_, err := h.run("", "login", "alice", "secret1")
	require.NoError(t, err)

	_, err = bobClient.Matches.Like(ctx, alice.ID)
	require.NoError(t, err)

	out, err := h.run("", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob Tester")

	out, err = h.run("l\nq\n", "discover")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob Tester")
	assert.Contains(t, out, "* It's a match!")
	assert.Contains(t, out, "No more profiles to show right now.")

	out, err = h.run("", "matches")
	require.NoError(t, err)
	assert.Contains(t, out, "#"+strconv.Itoa(int(bob.ID)))

	out, err = h.run("hello bob\n   \n/back\n", "chat", strconv.Itoa(int(bob.ID)))
	require.NoError(t, err)
	assert.NotContains(t, out, conversationAlert)

	thread, err := bobClient.Messages.Conversation(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "hello bob", thread[0].Content)

	_, err = bobClient.Messages.Send(ctx, alice.ID, "hi alice")
	require.NoError(t, err)

	out, err = h.run("", "unread")
	require.NoError(t, err)
	assert.Contains(t, out, "hi alice")
}

func TestChatWithoutMatchAlerts(t *testing.T) {
	h := newHarness(t)
	h.signUp("alice", entity.GenderFemale, entity.GenderMale)
	bob, _ := h.signUp("bob", entity.GenderMale, entity.GenderFemale)

	_, err := h.run("", "login", "alice", "secret1")
	require.NoError(t, err)

	out, err := h.run("anyone there?\n/back\n", "chat", strconv.Itoa(int(bob.ID)))
	require.NoError(t, err)
	assert.Contains(t, out, conversationAlert)

	_, err = h.run("", "chat", "abc")
	assert.ErrorIs(t, err, cli.ErrUsage)
}

// promptWatcher collects output and closes seen once want has been written.
type promptWatcher struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	want string
	seen chan struct{}
	once sync.Once
}

func (w *promptWatcher) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.Write(p)
	if strings.Contains(w.buf.String(), w.want) {
		w.once.Do(func() { close(w.seen) })
	}
	return n, err
}

func (w *promptWatcher) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestChatLeavesQuietlyOnInterrupt(t *testing.T) {
	h := newHarness(t)
	h.signUp("alice", entity.GenderFemale, entity.GenderMale)
	bob, bobClient := h.signUp("bob", entity.GenderMale, entity.GenderFemale)

	_, err := h.run("", "login", "alice", "secret1")
	require.NoError(t, err)

	pr, pw := io.Pipe()
	out := &promptWatcher{want: "/back to leave", seen: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		argv := []string{"workmatch", "-api", h.url, "chat", strconv.Itoa(int(bob.ID))}
		done <- internal.RunWithInput(ctx, pr, out, argv)
	}()

	select {
	case <-out.seen:
	case <-time.After(5 * time.Second):
		t.Fatal("chat never prompted for input")
	}

	cancel()
	_, err = pw.Write([]byte("typed after ctrl-c\n"))
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("chat did not leave after cancel")
	}

	assert.NotContains(t, out.String(), conversationAlert)

	unread, err := bobClient.Messages.Unread(context.Background())
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestShell(t *testing.T) {
	h := newHarness(t)
	h.signUp("alice", entity.GenderFemale, entity.GenderMale)

	out, err := h.run("whoami\nmatches\nbogus\nlogin alice secret1\nhealth\nexit\n")
	require.NoError(t, err)

	assert.Contains(t, out, "workmatch (signed out)> ")
	assert.Contains(t, out, "Please sign in first")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "workmatch (Alice)> ")
	assert.Contains(t, out, "DatingLife API 1.0.0: UP")
}

const conversationAlert = "Failed to send message. Please make sure you are matched with this user."
