package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gobd/apidocs"
)

var versionsOutput string

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the configured api versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := m.Get().Provider()
		if err != nil {
			return err
		}
		return printVersions(cmd.OutOrStdout(), p.Descriptions(), versionsOutput)
	},
}

func init() {
	versionsCmd.Flags().StringVarP(&versionsOutput, "output", "o", "text", "output format: text, json or yaml")
}

type versionRow struct {
	Group      string `json:"group" yaml:"group"`
	Version    string `json:"version" yaml:"version"`
	Deprecated bool   `json:"deprecated" yaml:"deprecated"`
	URL        string `json:"url" yaml:"url"`
}

func printVersions(w io.Writer, descs []apidocs.Description, format string) error {
	rows := lo.Map(descs, func(d apidocs.Description, _ int) versionRow {
		return versionRow{
			Group:      d.GroupName,
			Version:    d.Version.String(),
			Deprecated: d.Deprecated,
			URL:        strings.ReplaceAll(apidocs.DefaultRouteTemplate, "{documentName}", d.GroupName),
		}
	})

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		return yaml.NewEncoder(w).Encode(rows)
	case "text":
		for _, r := range rows {
			status := ""
			if r.Deprecated {
				status = " (deprecated)"
			}
			if _, err := fmt.Fprintf(w, "%-10s %-10s %s%s\n", strings.ToUpper(r.Group), r.Version, r.URL, status); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
