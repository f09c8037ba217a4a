package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ghaniswara/workmatch/internal/entity"
)

type MessageAPI struct {
	c *Client
}

func (m *MessageAPI) Send(ctx context.Context, recipientID uint, content string) (*entity.Message, error) {
	var out entity.Message
	req := entity.SendMessageRequest{RecipientID: recipientID, Content: content}
	if err := m.c.do(ctx, http.MethodPost, "/messages/send", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MessageAPI) Conversation(ctx context.Context, userID uint) ([]entity.Message, error) {
	var out []entity.Message
	if err := m.c.do(ctx, http.MethodGet, fmt.Sprintf("/messages/conversation/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MessageAPI) Unread(ctx context.Context) ([]entity.Message, error) {
	var out []entity.Message
	if err := m.c.do(ctx, http.MethodGet, "/messages/unread", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
