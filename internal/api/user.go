package api

import (
	"context"
	"net/http"

	"github.com/ghaniswara/workmatch/internal/entity"
)

type UserAPI struct {
	c *Client
}

func (u *UserAPI) GetProfile(ctx context.Context) (*entity.User, error) {
	var out entity.User
	if err := u.c.do(ctx, http.MethodGet, "/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UserAPI) UpdateProfile(ctx context.Context, req entity.UpdateProfileRequest) (*entity.User, error) {
	var out entity.User
	if err := u.c.do(ctx, http.MethodPut, "/users/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPotentialMatches lists candidates for the discover feed.
func (u *UserAPI) GetPotentialMatches(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	if err := u.c.do(ctx, http.MethodGet, "/users/matches", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
