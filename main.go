package main

import (
	"fmt"
	"os"
	"path/filepath"

	"finanzas/txform/cmd/accounts"
	"finanzas/txform/cmd/catalogs"
	"finanzas/txform/cmd/export"
	"finanzas/txform/cmd/root"
	"finanzas/txform/cmd/submit"
	"finanzas/txform/cmd/validate"

	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables before any command configures logging,
	// so LOG_LEVEL from .env is honored from the first line.
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(submit.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(catalogs.Cmd)
	root.Cmd.AddCommand(accounts.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
