package routesMatch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ghaniswara/workmatch/internal/backend/middleware"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/match"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/pkg/http_util"
	"github.com/labstack/echo"
)

func targetID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func GetPotentialMatchesHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user := middleware.CurrentUser(c)

	profiles, err := matchCase.GetPotentialMatches(c.Request().Context(), *user)
	if err != nil {
		logger.Error("potential matches failed", "user_id", user.ID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to get profiles")
	}

	return http_util.Encode(c, http.StatusOK, profiles)
}

func LikeHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user := middleware.CurrentUser(c)

	likesToUserID, ok := targetID(c)
	if !ok {
		return http_util.Fail(c, http.StatusBadRequest, "invalid request")
	}

	resp, err := matchCase.Like(c.Request().Context(), user.ID, likesToUserID)
	switch {
	case errors.Is(err, match.ErrSelfLike), errors.Is(err, match.ErrAlreadyLiked):
		return http_util.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, match.ErrUnknownUser):
		return http_util.Fail(c, http.StatusNotFound, err.Error())
	case err != nil:
		logger.Error("like failed", "user_id", user.ID, "target_id", likesToUserID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to like")
	}

	if resp.Match {
		logger.Info("match created", "user_id", user.ID, "target_id", likesToUserID)
	}
	return http_util.Encode(c, http.StatusOK, resp)
}

func RejectHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user := middleware.CurrentUser(c)

	rejectUserID, ok := targetID(c)
	if !ok {
		return http_util.Fail(c, http.StatusBadRequest, "invalid request")
	}

	if err := matchCase.Reject(c.Request().Context(), user.ID, rejectUserID); err != nil {
		logger.Error("reject failed", "user_id", user.ID, "target_id", rejectUserID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to reject")
	}

	return http_util.Encode(c, http.StatusOK, entity.LikeResponse{Message: match.RejectedMessage})
}

func MyMatchesHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user := middleware.CurrentUser(c)

	matches, err := matchCase.GetMatches(c.Request().Context(), user.ID)
	if err != nil {
		logger.Error("list matches failed", "user_id", user.ID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to get matches")
	}

	return http_util.Encode(c, http.StatusOK, matches)
}

func PendingHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user := middleware.CurrentUser(c)

	pending, err := matchCase.GetPending(c.Request().Context(), user.ID)
	if err != nil {
		logger.Error("list pending failed", "user_id", user.ID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to get pending matches")
	}

	return http_util.Encode(c, http.StatusOK, pending)
}
