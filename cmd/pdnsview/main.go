package main

import (
	"context"
	"os"

	"github.com/vinceanalytics/pdnsview/internal/cmd"
	"github.com/vinceanalytics/pdnsview/internal/log"
)

func main() {
	if err := cmd.App().Run(context.Background(), os.Args); err != nil {
		log.Get().Fatal().Err(err).Msg("exited")
	}
}
