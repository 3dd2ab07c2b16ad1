package main

import (
	"context"
	"os"

	"github.com/synergysphere/synergysphere/internal/logging"
)

func main() {
	log := logging.NewDefault()

	if err := newRootCmd(log).ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
