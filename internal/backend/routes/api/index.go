package routesAPI

import (
	"net/http"

	"github.com/ghaniswara/workmatch/internal/backend/middleware"
	routesAuth "github.com/ghaniswara/workmatch/internal/backend/routes/api/auth"
	routesMatch "github.com/ghaniswara/workmatch/internal/backend/routes/api/match"
	routesMessage "github.com/ghaniswara/workmatch/internal/backend/routes/api/message"
	routesUser "github.com/ghaniswara/workmatch/internal/backend/routes/api/user"
	authUseCase "github.com/ghaniswara/workmatch/internal/backend/usecase/auth"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/match"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/message"
	"github.com/ghaniswara/workmatch/internal/backend/usecase/user"
	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/pkg/http_util"
	"github.com/labstack/echo"
)

type UseCases struct {
	Auth    authUseCase.IAuthUseCase
	User    user.IUserUseCase
	Match   match.IMatchUseCase
	Message message.IMessageUseCase
}

var Health = entity.HealthResponse{
	Status:  "UP",
	Service: "DatingLife API",
	Version: "1.0.0",
}

func InitAPIRoutes(e *echo.Echo, cases UseCases) {
	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return http_util.Encode(c, http.StatusOK, Health)
	})

	api.POST("/auth/signup", func(c echo.Context) error {
		return routesAuth.SignUpHandler(c, cases.Auth)
	})
	api.POST("/auth/signin", func(c echo.Context) error {
		return routesAuth.SignInHandler(c, cases.Auth)
	})

	secured := api.Group("", middleware.JWTMiddleware(cases.Auth))

	secured.GET("/users/profile", func(c echo.Context) error {
		return routesUser.GetProfileHandler(c, cases.User)
	})
	secured.PUT("/users/profile", func(c echo.Context) error {
		return routesUser.UpdateProfileHandler(c, cases.User)
	})
	secured.GET("/users/matches", func(c echo.Context) error {
		return routesMatch.GetPotentialMatchesHandler(c, cases.Match)
	})

	secured.POST("/matches/like/:id", func(c echo.Context) error {
		return routesMatch.LikeHandler(c, cases.Match)
	})
	secured.POST("/matches/reject/:id", func(c echo.Context) error {
		return routesMatch.RejectHandler(c, cases.Match)
	})
	secured.GET("/matches/my-matches", func(c echo.Context) error {
		return routesMatch.MyMatchesHandler(c, cases.Match)
	})
	secured.GET("/matches/pending", func(c echo.Context) error {
		return routesMatch.PendingHandler(c, cases.Match)
	})

	secured.POST("/messages/send", func(c echo.Context) error {
		return routesMessage.SendHandler(c, cases.Message)
	})
	secured.GET("/messages/conversation/:id", func(c echo.Context) error {
		return routesMessage.ConversationHandler(c, cases.Message)
	})
	secured.GET("/messages/unread", func(c echo.Context) error {
		return routesMessage.UnreadHandler(c, cases.Message)
	})
}
