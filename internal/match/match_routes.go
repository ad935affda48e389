package match

import (
	mw "github.com/DhavalSuthar-24/livescore/internal/middleware"
	"github.com/DhavalSuthar-24/livescore/pkg/rmiddleware"
	"github.com/DhavalSuthar-24/livescore/pkg/validator"
	"github.com/gin-gonic/gin"
)

// MatchRoutes sets up all match-related routes. It fails when the request
// validators cannot be registered.
func MatchRoutes(router *gin.RouterGroup, service *Service, jwtSecret string) error {
	if err := validator.RegisterBindings(); err != nil {
		return err
	}
	matchController := NewMatchController(service)

	authRoutes := router.Group("/matches")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret))
	{
		authRoutes.POST("", rmiddleware.OrganizerOrAdminMiddleware(), matchController.CreateMatch)
		authRoutes.GET("/:id", matchController.GetMatchByID)

		// Scoring transitions, all through the consistency gate
		authRoutes.POST("/:id/toss", matchController.Toss)
		authRoutes.POST("/:id/players", matchController.SelectPlayers)
		authRoutes.POST("/:id/ball", matchController.ScoreBall)
		authRoutes.POST("/:id/undo", matchController.UndoBall)
	}
	return nil
}
