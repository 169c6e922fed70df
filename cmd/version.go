package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "tutor", resolveVersion(version))
	},
}

// resolveVersion normalizes a release tag, falling back to the module
// version recorded by `go install` and then to "(devel)".
func resolveVersion(v string) string {
	if c := semver.Canonical(ensureV(v)); c != "" {
		return c
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if c := semver.Canonical(info.Main.Version); c != "" {
			return c
		}
	}
	return "(devel)"
}

func ensureV(v string) string {
	if v != "" && v[0] != 'v' {
		return "v" + v
	}
	return v
}
