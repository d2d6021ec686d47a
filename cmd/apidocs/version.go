package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.gitRelease=... -X main.gitCommit=...".
var (
	gitRelease = ""
	gitCommit  = ""
)

func release() string {
	if gitRelease != "" {
		return gitRelease
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "apidocs %s\n", release())
		fmt.Fprintf(out, "  Go:     %s\n", runtime.Version())
		if gitCommit != "" {
			fmt.Fprintf(out, "  Commit: %s\n", gitCommit)
		}
	},
}
