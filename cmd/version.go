package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/firmsite/site-api/cmd.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// buildInfo describes the running binary
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuiltAt   string `json:"builtAt"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// currentBuild fills in the commit and build time from the Go toolchain's
// VCS stamp when ldflags left them unset
func currentBuild() buildInfo {
	info := buildInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuiltAt:   BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "unknown":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.BuiltAt == "unknown":
				info.BuiltAt = s.Value
			}
		}
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build details",
	Long: `Show the release, commit and toolchain the site API binary was built from.

Use --short in scripts that only need the release, or --json to feed
deployment tooling.`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print only the release")
	versionCmd.Flags().Bool("json", false, "print build details as JSON")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	info := currentBuild()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	if short, _ := cmd.Flags().GetBool("short"); short {
		_, err := fmt.Fprintf(out, "v%s\n", info.Version)
		return err
	}
	return writeBuildInfo(out, info)
}

func writeBuildInfo(w io.Writer, info buildInfo) error {
	rows := [][2]string{
		{"Version", "v" + info.Version},
		{"Git Commit", info.Commit},
		{"Build Time", info.BuiltAt},
		{"Go Version", info.GoVersion},
		{"OS/Arch", info.Platform},
	}

	var b strings.Builder
	b.WriteString("Firm Site API\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-12s %s\n", row[0]+":", row[1])
	}
	_, err := io.WriteString(w, b.String())
	return err
}
