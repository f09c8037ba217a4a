package routesAuth

import (
	"errors"
	"net/http"

	authUseCase "github.com/ghaniswara/workmatch/internal/backend/usecase/auth"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/pkg/http_util"
	"github.com/labstack/echo"
)

func SignUpHandler(c echo.Context, authCase authUseCase.IAuthUseCase) error {
	reqBody, err := http_util.Decode[entity.SignUpRequest](c)
	if err != nil {
		return nil
	}

	if !http_util.ValidateRequest(c, &reqBody) {
		return nil
	}

	user, err := authCase.SignupUser(c.Request().Context(), reqBody)
	if errors.Is(err, authUseCase.ErrUsernameTaken) {
		return http_util.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		logger.Error("sign up failed", "username", reqBody.Username, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to sign up")
	}

	logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return http_util.Encode(c, http.StatusOK, entity.SignUpResponse{Message: "User registered successfully!"})
}

func SignInHandler(c echo.Context, authCase authUseCase.IAuthUseCase) error {
	reqBody, err := http_util.Decode[entity.SignInRequest](c)
	if err != nil {
		return nil
	}

	if !http_util.ValidateRequest(c, &reqBody) {
		return nil
	}

	resp, err := authCase.SignIn(c.Request().Context(), reqBody.Username, reqBody.Password)
	if errors.Is(err, authUseCase.ErrInvalidCredentials) {
		return http_util.Fail(c, http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		logger.Error("sign in failed", "username", reqBody.Username, "error", err)
		return http_util.Fail(c, http.StatusInternalServerError, "failed to sign in")
	}

	return http_util.Encode(c, http.StatusOK, resp)
}
