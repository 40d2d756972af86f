package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

// currentVersion reports the linked-in build metadata. Builds made with
// plain `go build` or `go install` carry no -ldflags, so the VCS stamp is
// used for the commit and date instead.
func currentVersion() versionInfo {
	info := versionInfo{
		Version:  version,
		Commit:   commit,
		Date:     date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "none":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Date == "unknown":
				info.Date = s.Value
			}
		}
	}
	return info
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			info := currentVersion()
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(info)
			}
			_, err := fmt.Fprintf(out, "trustgrid version %s (commit: %s, built: %s, %s %s)\n",
				info.Version, info.Commit, info.Date, info.Go, info.Platform)
			return err
		},
	}
}
