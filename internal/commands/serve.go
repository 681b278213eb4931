package commands

import (
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/starascendin/lifeos-finance/internal/api"
	"github.com/starascendin/lifeos-finance/internal/classify"
	"github.com/starascendin/lifeos-finance/internal/ledger"
	"github.com/starascendin/lifeos-finance/internal/logger"
)

func newServeCommand() *cobra.Command {
	var addr string
	var configPath string
	var classificationPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction pipeline over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if classificationPath != "" {
				cfg.ClassificationFile = classificationPath
			}

			table := classify.Default()
			if cfg.ClassificationFile != "" {
				table, err = classify.Load(cfg.ClassificationFile)
				if err != nil {
					return err
				}
			}

			log := logger.New()
			app := fiber.New(fiber.Config{DisableStartupMessage: true})
			handler := api.NewHandler(ledger.NewAssembler(table), log)
			handler.RegisterRoutes(app)

			log.Info().Str("addr", addr).Msg("listening")
			return app.Listen(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "config file")
	cmd.Flags().StringVar(&classificationPath, "classification", "", "classification table YAML")

	return cmd
}
