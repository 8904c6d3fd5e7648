package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const flagHome = "home"

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".dposd"
	}
	return filepath.Join(dir, ".dposd")
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dposd",
		Short:         "DPoS chain state daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(flagHome, defaultHome(), "node home directory")

	InitRootCmd(rootCmd)

	return rootCmd
}
