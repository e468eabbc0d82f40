package main

import (
	"log"

	"github.com/joho/godotenv"
	"stayvista_service/startup"
	"stayvista_service/startup/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
