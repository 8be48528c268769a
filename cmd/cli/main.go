package main

import (
	"context"

	"github.com/papper-tech/auth-service/internal/client/cli"
	"github.com/papper-tech/auth-service/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
