package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"fjacquet/statement-verify/cmd/analyze"
	"fjacquet/statement-verify/cmd/batch"
	"fjacquet/statement-verify/cmd/root"
)

func init() {
	// Load environment variables before any configuration is read.
	loadEnvSilently()

	root.Init()
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// loadEnvSilently loads a .env file if one exists, without logging: the
// log level itself may come from the environment being loaded.
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
