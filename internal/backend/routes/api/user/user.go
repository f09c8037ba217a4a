package routesUser

import (
	"net/http"

	"github.com/ghaniswara/workmatch/internal/backend/middleware"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/user"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/pkg/http_util"
	"github.com/labstack/echo"
)

func GetProfileHandler(c echo.Context, userCase user.IUserUseCase) error {
	current := middleware.CurrentUser(c)

	profile, err := userCase.GetProfile(c.Request().Context(), current.ID)
	if err != nil {
		return http_util.Fail(c, http.StatusNotFound, "User not found")
	}

	return http_util.Encode(c, http.StatusOK, profile)
}

func UpdateProfileHandler(c echo.Context, userCase user.IUserUseCase) error {
	current := middleware.CurrentUser(c)

	reqBody, err := http_util.Decode[entity.UpdateProfileRequest](c)
	if err != nil {
		return nil
	}

	if !http_util.ValidateRequest(c, &reqBody) {
		return nil
	}

	profile, err := userCase.UpdateProfile(c.Request().Context(), current.ID, reqBody)
	if err != nil {
		logger.Error("update profile failed", "user_id", current.ID, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to update profile")
	}

	return http_util.Encode(c, http.StatusOK, profile)
}
