package main

import (
	"log"

	approuters "github.com/YashRana52/INSTRAGRAM/internal/app_routers"
	"github.com/YashRana52/INSTRAGRAM/internal/configuration"
)

func main() {
	container, err := configuration.BuildContainer()
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// Ensure cleanup on shutdown
	defer container.Close()

	// Setup routers
	approuters.StartServer(container)
}
