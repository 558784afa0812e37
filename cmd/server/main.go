package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/adboard/internal/config"
	"github.com/dmitrijs2005/adboard/internal/server"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
