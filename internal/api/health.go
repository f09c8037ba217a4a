package api

import (
	"context"
	"net/http"

	"github.com/ghaniswara/workmatch/internal/entity"
)

func (c *Client) Health(ctx context.Context) (*entity.HealthResponse, error) {
	var out entity.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
