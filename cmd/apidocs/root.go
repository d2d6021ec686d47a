package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Gobd/apidocs/internal/config"
	"github.com/Gobd/apidocs/internal/log"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "apidocs",
	Short: "Serve versioned OpenAPI documentation",
	Long: `apidocs builds one OpenAPI document per configured API version,
enriches it with XML comment files found next to the binary, and serves
the documents together with a Swagger UI.

  /api-docs/{group}/swagger.json  - one document per version
  /api-docs/                      - the UI, one entry per version
  /metrics                        - Prometheus metrics`,
	Version:      release(),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.apidocs/config.yaml)",
	)

	rootCmd.AddCommand(serveCmd, exportCmd, versionsCmd, initCmd, versionCmd)
}

// loadConfig reads the configuration and builds the logger it describes.
// Config problems are reported through a bootstrap logger since the
// configured one does not exist yet.
func loadConfig() (*config.Manager, *logrus.Logger, error) {
	boot := logrus.New()
	m, err := config.NewManager(cfgFile, boot)
	if err != nil {
		return nil, nil, err
	}
	cfg := m.Get()
	logger, err := log.InitLogs(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	if f := m.File(); f != "" {
		logger.WithField("file", f).Debug("using config file")
	}
	return m, logger, nil
}
