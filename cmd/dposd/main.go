package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// DPOSD_* overrides may come from a .env file
	_ = godotenv.Load()

	rootCmd := NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.OutOrStderr(), err)
		os.Exit(1)
	}
}
