package main

import (
	"log"

	"github.com/DhavalSuthar-24/gully/config"
	_ "github.com/DhavalSuthar-24/gully/docs"
	"github.com/DhavalSuthar-24/gully/internal/match"
	"github.com/DhavalSuthar-24/gully/internal/scorer"
	"github.com/DhavalSuthar-24/gully/internal/team"
	"github.com/DhavalSuthar-24/gully/routes"
)

// @title Gully Scoring API 🏏
// @version 1.0
// @description Ball-by-ball scoring server for gully cricket.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&scorer.Scorer{},
		&team.Team{}, &team.Player{},
		&match.Match{}, &match.Delivery{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
