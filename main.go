package main

import "github.com/HariSeldon343/NexioSolution-sub000/internal/app"

// @title NexioSolution Scheduling API
// @version 1.0
// @description Scheduling & assignment backend: calendar events, tasks and notifications.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
