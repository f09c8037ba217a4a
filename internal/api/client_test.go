package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghaniswara/workmatch/internal/api"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/tokenstore"
)

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]func(w http.ResponseWriter)
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	fb := &fakeBackend{routes: map[string]func(http.ResponseWriter){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.requests = append(fb.requests, recorded{r.Method, r.URL.Path, r.Header.Get("Authorization"), string(body)})
		route := fb.routes[r.Method+" "+r.URL.Path]
		fb.mu.Unlock()

		if route == nil {
			http.NotFound(w, r)
			return
		}
		route(w)
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) on(method, path string, status int, v any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" "+path] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			_ = json.NewEncoder(w).Encode(v)
		}
	}
}

func (fb *fakeBackend) last() recorded {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.requests[len(fb.requests)-1]
}

func TestBearerTokenAttached(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/users/profile", http.StatusOK, entity.User{ID: 7, Username: "jane"})

	store := tokenstore.NewMemoryStore()
	client := api.New(srv.URL+"/api/", store)
	ctx := context.Background()

	_, err := client.Users.GetProfile(ctx)
	require.NoError(t, err)
	assert.Empty(t, fb.last().Auth, "no token means unauthenticated request")

	require.NoError(t, store.Set(ctx, "tok"))
	user, err := client.Users.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", fb.last().Auth)
	assert.Equal(t, uint(7), user.ID)
}

func TestEndpoints(t *testing.T) {
	fb, srv := newFakeBackend(t)
	client := api.New(srv.URL+"/api", nil)
	ctx := context.Background()

	fb.on(http.MethodPost, "/api/auth/signin", http.StatusOK, entity.AuthResponse{AccessToken: "jwt", TokenType: "Bearer", ID: 1})
	auth, err := client.Auth.SignIn(ctx, "jane", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jwt", auth.AccessToken)
	assert.JSONEq(t, `{"username":"jane","password":"secret1"}`, fb.last().Body)

	fb.on(http.MethodPost, "/api/auth/signup", http.StatusOK, entity.SignUpResponse{Message: "ok"})
	_, err = client.Auth.SignUp(ctx, entity.SignUpRequest{Username: "jane"})
	require.NoError(t, err)

	fb.on(http.MethodPut, "/api/users/profile", http.StatusOK, entity.User{ID: 1, Bio: "hi"})
	updated, err := client.Users.UpdateProfile(ctx, entity.UpdateProfileRequest{Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", updated.Bio)

	fb.on(http.MethodGet, "/api/users/matches", http.StatusOK, []entity.User{{ID: 2}, {ID: 3}})
	candidates, err := client.Users.GetPotentialMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	fb.on(http.MethodPost, "/api/matches/like/2", http.StatusOK, entity.LikeResponse{Message: "It's a match!", Match: true})
	like, err := client.Matches.Like(ctx, 2)
	require.NoError(t, err)
	assert.True(t, like.Match)

	fb.on(http.MethodPost, "/api/matches/reject/3", http.StatusOK, nil)
	require.NoError(t, client.Matches.Reject(ctx, 3))

	fb.on(http.MethodGet, "/api/matches/my-matches", http.StatusOK, []entity.Match{{ID: 1}})
	matches, err := client.Matches.MyMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	fb.on(http.MethodGet, "/api/matches/pending", http.StatusOK, []entity.Match{})
	pending, err := client.Matches.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	fb.on(http.MethodPost, "/api/messages/send", http.StatusOK, entity.Message{ID: 9, Content: "hey"})
	msg, err := client.Messages.Send(ctx, 2, "hey")
	require.NoError(t, err)
	assert.Equal(t, uint(9), msg.ID)
	assert.JSONEq(t, `{"recipientId":2,"content":"hey"}`, fb.last().Body)

	fb.on(http.MethodGet, "/api/messages/conversation/2", http.StatusOK, []entity.Message{{ID: 9}})
	conv, err := client.Messages.Conversation(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, conv, 1)

	fb.on(http.MethodGet, "/api/messages/unread", http.StatusOK, []entity.Message{})
	_, err = client.Messages.Unread(ctx)
	require.NoError(t, err)
}

func TestErrorsPropagate(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.on(http.MethodPost, "/api/auth/signup", http.StatusBadRequest, map[string]string{"message": "Username is already taken!"})
	fb.on(http.MethodGet, "/api/users/profile", http.StatusUnauthorized, map[string]string{"error": "invalid token"})

	client := api.New(srv.URL+"/api", nil)
	ctx := context.Background()

	_, err := client.Auth.SignUp(ctx, entity.SignUpRequest{})
	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Username is already taken!", api.ErrorMessage(err, "Registration failed"))

	_, err = client.Users.GetProfile(ctx)
	assert.True(t, api.IsUnauthorized(err))

	_, err = client.Messages.Unread(ctx)
	assert.Equal(t, "404 page not found", api.ErrorMessage(err, "fallback"))
}

func TestTransportFailure(t *testing.T) {
	_, srv := newFakeBackend(t)
	srv.Close()

	client := api.New(srv.URL, nil)
	_, err := client.Users.GetProfile(context.Background())
	require.Error(t, err)

	var apiErr *api.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, "Registration failed", api.ErrorMessage(err, "Registration failed"))
}
