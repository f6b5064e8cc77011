package team

import (
	"github.com/DhavalSuthar-24/gully/config"
	"github.com/DhavalSuthar-24/gully/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewTeamRepository(db)
	controller := NewTeamController(repo)

	teams := router.Group("/teams")
	teams.GET("/:id", controller.GetTeam)

	protected := router.Group("/teams")
	protected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		protected.POST("", controller.CreateTeam)
		protected.GET("", controller.ListTeams)
		protected.DELETE("/:id", controller.DeleteTeam)
	}
}
