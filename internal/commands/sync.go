package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/starascendin/lifeos-finance/internal/logger"
	"github.com/starascendin/lifeos-finance/internal/models"
	"github.com/starascendin/lifeos-finance/internal/sync"
)

func newSyncCommand() *cobra.Command {
	var snapshotPath string
	var configPath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push an existing snapshot to the remote backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			log := logger.New()

			data, err := os.ReadFile(snapshotPath)
			if err != nil {
				return fmt.Errorf("reading snapshot: %w", err)
			}
			var snapshot struct {
				Accounts []models.AccountRecord `json:"accounts"`
			}
			if err := json.Unmarshal(data, &snapshot); err != nil {
				return fmt.Errorf("parsing snapshot: %w", err)
			}

			client, err := sync.NewClient(cfg.Remote.URL, cfg.Remote.AdminKey, cfg.Remote.UserTokenIdentifier, cfg.Remote.MutationPath, log)
			if err != nil {
				return err
			}
			return client.PushSnapshot(cmd.Context(), snapshot.Accounts)
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "snapshot JSON file (required)")
	_ = cmd.MarkFlagRequired("snapshot")
	cmd.Flags().StringVar(&configPath, "config", "", "config file")

	return cmd
}
