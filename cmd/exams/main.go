package main

import (
	"log"

	"github.com/opencourse/transcripts/internal/exams/app"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("exams: failed to initialize: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("exams: %v", err)
	}
}
