package middleware

import (
	"net/http"
	"strings"

	authUseCase "github.com/ghaniswara/workmatch/internal/backend/usecase/auth"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/pkg/http_util"
	"github.com/labstack/echo"
)

const userKey = "userProfile"

func JWTMiddleware(authCase authUseCase.IAuthUseCase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return http_util.Fail(c, http.StatusUnauthorized, "missing token")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return http_util.Fail(c, http.StatusUnauthorized, "invalid token format")
			}

			userProfile, err := authCase.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return http_util.Fail(c, http.StatusUnauthorized, "invalid token")
			}

			c.Set(userKey, userProfile)

			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by JWTMiddleware.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(userKey).(*entity.User)
	return user
}
