package main

import (
	"log"

	"example/chess-dashboard/app"
)

func main() {
	cfg := app.MustInit()
	router := app.NewRouter()
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
