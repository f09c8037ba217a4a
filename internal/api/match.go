package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ghaniswara/workmatch/internal/entity"
)

type MatchAPI struct {
	c *Client
}

func (m *MatchAPI) Like(ctx context.Context, userID uint) (*entity.LikeResponse, error) {
	var out entity.LikeResponse
	if err := m.c.do(ctx, http.MethodPost, fmt.Sprintf("/matches/like/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MatchAPI) Reject(ctx context.Context, userID uint) error {
	return m.c.do(ctx, http.MethodPost, fmt.Sprintf("/matches/reject/%d", userID), nil, nil)
}

func (m *MatchAPI) MyMatches(ctx context.Context) ([]entity.Match, error) {
	var out []entity.Match
	if err := m.c.do(ctx, http.MethodGet, "/matches/my-matches", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Pending lists likes received that the session user has not answered yet.
func (m *MatchAPI) Pending(ctx context.Context) ([]entity.Match, error) {
	var out []entity.Match
	if err := m.c.do(ctx, http.MethodGet, "/matches/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
