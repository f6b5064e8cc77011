package match

import (
	"github.com/DhavalSuthar-24/gully/config"
	"github.com/DhavalSuthar-24/gully/internal/live"
	"github.com/DhavalSuthar-24/gully/internal/middleware"
	"github.com/DhavalSuthar-24/gully/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterMatchRoutes wires the scoring API and returns the controller so
// the read-side (stats, live feed) can share its in-memory state.
func RegisterMatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, hub *live.Hub) *MatchController {
	repo := NewGormMatchRepository(db)
	teamRepo := team.NewTeamRepository(db)
	controller := NewMatchController(repo, teamRepo, hub, appConfig)

	matches := router.Group("/matches")
	matches.GET("/:id", controller.GetMatch)
	matches.GET("/code/:code", controller.GetMatchByCode)

	protected := router.Group("/matches")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		protected.POST("", controller.CreateMatch)
		protected.GET("", controller.ListMatches)
		protected.POST("/:id/toss", controller.RecordToss)
		protected.POST("/:id/openers", controller.SelectOpeners)
		protected.POST("/:id/deliveries", controller.RecordDelivery)
		protected.POST("/:id/undo", controller.UndoLastDelivery)
		protected.POST("/:id/batsman", controller.SelectReplacementBatsman)
		protected.POST("/:id/bowler", controller.SelectNextBowler)
		protected.POST("/:id/swap", controller.SwapEnds)
		protected.POST("/:id/second-innings", controller.StartSecondInnings)
		protected.POST("/:id/finalize", controller.FinalizeMatch)
	}

	return controller
}
