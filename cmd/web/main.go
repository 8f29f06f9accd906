package main

import "reliefhub_backend/internal/app"

func main() {
	app.Run()
}
