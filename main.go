package main

import (
	"context"
	"os"

	"github.com/busanbiff/tripbudget/internal/app"
	log "github.com/sirupsen/logrus"
)

const defaultConfigPath = "./config/application.yaml"

func init() {
	configureLogging(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// configureLogging sets the logrus level (info when empty) and switches to JSON output for LOG_FORMAT=json.
func configureLogging(level, format string) {
	if level == "" {
		log.SetLevel(log.InfoLevel)
	} else {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	}

	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func main() {
	configPath := os.Getenv("TRIPBUDGET_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	application, err := app.NewApplication(context.Background(), configPath)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
