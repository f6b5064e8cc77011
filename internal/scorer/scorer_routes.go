package scorer

import (
	"github.com/DhavalSuthar-24/gully/config"
	"github.com/DhavalSuthar-24/gully/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterScorerRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewScorerRepository(db)
	controller := NewScorerController(repo, appConfig)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", controller.Register)
		authPublic.POST("/login", controller.Login)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authProtected.GET("/me", controller.Me)
	}
}
