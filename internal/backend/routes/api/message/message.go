package routesMessage

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ghaniswara/workmatch/internal/backend/middleware"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/message"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/pkg/http_util"
	"github.com/labstack/echo"
)

func SendHandler(c echo.Context, messageCase message.IMessageUseCase) error {
	user := middleware.CurrentUser(c)

	reqBody, err := http_util.Decode[entity.SendMessageRequest](c)
	if err != nil {
		return nil
	}

	if !http_util.ValidateRequest(c, &reqBody) {
		return nil
	}

	msg, err := messageCase.Send(c.Request().Context(), user.ID, reqBody)
	if errors.Is(err, message.ErrNotMatched) {
		return http_util.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		logger.Error("send message failed", "user_id", user.ID, "recipient_id", reqBody.RecipientID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to send message")
	}

	return http_util.Encode(c, http.StatusOK, msg)
}

func ConversationHandler(c echo.Context, messageCase message.IMessageUseCase) error {
	user := middleware.CurrentUser(c)

	peerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return http_util.Fail(c, http.StatusBadRequest, "invalid request")
	}

	msgs, err := messageCase.Conversation(c.Request().Context(), user.ID, uint(peerID))
	if errors.Is(err, message.ErrNotMatched) {
		return http_util.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		logger.Error("conversation failed", "user_id", user.ID, "peer_id", peerID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to get conversation")
	}

	return http_util.Encode(c, http.StatusOK, msgs)
}

func UnreadHandler(c echo.Context, messageCase message.IMessageUseCase) error {
	user := middleware.CurrentUser(c)

	msgs, err := messageCase.Unread(c.Request().Context(), user.ID)
	if err != nil {
		logger.Error("unread failed", "user_id", user.ID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to get unread messages")
	}

	return http_util.Encode(c, http.StatusOK, msgs)
}
