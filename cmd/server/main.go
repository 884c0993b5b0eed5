package main

import (
	"context"
	"log"

	"memberhub/internal/app"
	"memberhub/internal/config"
)

// @title                       memberhub API
// @version                     1.0
// @description                 Organizations, admin applications and memberships.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
