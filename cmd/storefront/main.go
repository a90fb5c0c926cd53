package main

import (
	"context"
	"os"
)

// @title						Frame Art Storefront API
// @version					1.0
// @description				Sessions, carts, favorites and artist publishing for the Frame Art marketplace.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @securityDefinitions.apikey	SessionID
// @in							header
// @name						X-Session-ID
func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
