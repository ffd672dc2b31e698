package main

import (
	"context"
	"log"
	"os"

	"todokeeper/internal/client/cli"
	"todokeeper/internal/client/config"
	"todokeeper/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
