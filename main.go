package main

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

func main() {
	start := time.Now()

	if err := newRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	log.WithField("elapsed_time", time.Since(start)).Info("done")
}
