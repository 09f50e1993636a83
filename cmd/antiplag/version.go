package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/coder26-cmd/anti-plagiarism/internal/version"
	"github.com/coder26-cmd/anti-plagiarism/service"
)

type versionInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	BuiltBy  string `json:"built_by"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

// NewVersionCmd reports build information. --short prints the version
// alone for scripts; --json prints every field.
func NewVersionCmd() *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case short:
				fmt.Fprintln(out, version.Short())
			case asJSON:
				return service.WriteJSON(out, versionInfo{
					Name:     version.Name,
					Version:  version.Short(),
					Commit:   version.Commit,
					Date:     version.Date,
					BuiltBy:  version.BuiltBy,
					Go:       runtime.Version(),
					Platform: runtime.GOOS + "/" + runtime.GOARCH,
				})
			default:
				fmt.Fprintln(out, version.Info())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")

	return cmd
}
