package api

import (
	"context"
	"net/http"

	"github.com/ghaniswara/workmatch/internal/entity"
)

type AuthAPI struct {
	c *Client
}

func (a *AuthAPI) SignIn(ctx context.Context, username, password string) (*entity.AuthResponse, error) {
	var out entity.AuthResponse
	req := entity.SignInRequest{Username: username, Password: password}
	if err := a.c.do(ctx, http.MethodPost, "/auth/signin", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) SignUp(ctx context.Context, req entity.SignUpRequest) (*entity.SignUpResponse, error) {
	var out entity.SignUpResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
