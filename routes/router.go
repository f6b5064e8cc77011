package routes

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/gully/config"
	"github.com/DhavalSuthar-24/gully/internal/live"
	"github.com/DhavalSuthar-24/gully/internal/match"
	"github.com/DhavalSuthar-24/gully/internal/scorer"
	"github.com/DhavalSuthar-24/gully/internal/stats"
	"github.com/DhavalSuthar-24/gully/internal/team"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>Gully</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>Gully cricket scorer 🏏</h1>
					<p><a href="/swagger/index.html">API docs</a></p>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	hub := live.NewHub()

	// API routes
	api := r.Group("/api")
	scorer.RegisterScorerRoutes(api, db, appConfig)
	team.RegisterTeamRoutes(api, db, appConfig)
	matchController := match.RegisterMatchRoutes(api, db, appConfig, hub)

	// Derived read views share the match controller's in-memory state.
	match.SetSummaryBuilder(func(m *match.Match) interface{} {
		return stats.BuildSummary(m)
	})
	statsController := stats.NewStatsController(matchController)
	api.GET("/matches/:id/summary", statsController.GetSummary)
	api.GET("/matches/:id/scorecard", statsController.GetScorecard)
	api.GET("/matches/:id/mvp", statsController.GetMVP)

	// Spectator feed. The first frame is the current summary; later frames
	// arrive as the scorer records deliveries.
	api.GET("/live/:code", func(c *gin.Context) {
		code := c.Param("code")
		m, err := matchController.GetLiveMatchByCode(code)
		if err != nil || m == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}
		if err := hub.Serve(c.Writer, c.Request, code, stats.BuildSummary(m)); err != nil {
			log.Printf("live: upgrade failed for %s: %v", code, err)
		}
	})

	return r
}
