// @title           AdOps Console API
// @version         1.0
// @description     Campaign management and analytics backend for the ad operations console.
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "adops_backend/internal/app"

func main() {
	app.Run()
}
