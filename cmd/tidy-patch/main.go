package main

import (
	"os"

	"github.com/agalbachicar/tidy-patch/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for OLLAMA_HOST and friends; absence is fine.
	_ = godotenv.Load()
	os.Exit(cli.Run())
}
