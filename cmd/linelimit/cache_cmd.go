package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"linelimit/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the on-disk result cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache("linelimit")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
		return nil
	},
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache("linelimit")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
	cacheCmd.AddCommand(cacheDirCmd)
}
