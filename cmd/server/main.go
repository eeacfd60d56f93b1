package main

import "societyportal/internal/app"

// @title Societies Portal API
// @version 1.0
// @description Authentication and email-verification backend for the college societies portal
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	app.Run()
}
