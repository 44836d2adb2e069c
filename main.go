package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"jukebox/cmd"
	"jukebox/config"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Error loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	flag.IntVar(&cfg.Port, "port", config.DefaultPort, "Port for the web server")
	flag.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "Directory served as the website")
	flag.StringVar(&cfg.AudioDir, "audio", cfg.AudioDir, "Directory of audio files to serve")
	flag.Parse()

	cmd.StartWebServer(cfg)
}
