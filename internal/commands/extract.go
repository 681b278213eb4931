package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/starascendin/lifeos-finance/internal/classify"
	"github.com/starascendin/lifeos-finance/internal/config"
	"github.com/starascendin/lifeos-finance/internal/ledger"
	"github.com/starascendin/lifeos-finance/internal/logger"
	"github.com/starascendin/lifeos-finance/internal/models"
	"github.com/starascendin/lifeos-finance/internal/networth"
	"github.com/starascendin/lifeos-finance/internal/parser"
	"github.com/starascendin/lifeos-finance/internal/sync"
	"github.com/starascendin/lifeos-finance/internal/writer"
)

// capturesFile is the on-disk input: one page session's captures plus any
// intercepted API responses.
type capturesFile struct {
	Captures    []models.RawCapture   `json:"captures"`
	APICaptures []networth.APICapture `json:"apiCaptures,omitempty"`
}

func newExtractCommand() *cobra.Command {
	var capturesPath string
	var configPath string
	var outputDir string
	var classificationPath string
	var noSync bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Parse captured page text into ledger artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if classificationPath != "" {
				cfg.ClassificationFile = classificationPath
			}
			return runExtract(cmd.Context(), capturesPath, cfg, noSync)
		},
	}

	cmd.Flags().StringVar(&capturesPath, "captures", "", "captures JSON file (required)")
	_ = cmd.MarkFlagRequired("captures")
	cmd.Flags().StringVar(&configPath, "config", "", "config file")
	cmd.Flags().StringVar(&outputDir, "output", "", "output directory (overrides config)")
	cmd.Flags().StringVar(&classificationPath, "classification", "", "classification table YAML (overrides config)")
	cmd.Flags().BoolVar(&noSync, "no-sync", false, "skip the remote push even when configured")

	return cmd
}

func runExtract(ctx context.Context, capturesPath string, cfg *config.Config, noSync bool) error {
	log := logger.New()

	data, err := os.ReadFile(capturesPath)
	if err != nil {
		return fmt.Errorf("reading captures file: %w", err)
	}
	var input capturesFile
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parsing captures file: %w", err)
	}
	if len(input.Captures) == 0 {
		return fmt.Errorf("captures file %q holds no captures", capturesPath)
	}

	table := classify.Default()
	if cfg.ClassificationFile != "" {
		table, err = classify.Load(cfg.ClassificationFile)
		if err != nil {
			return err
		}
	}

	assembler := ledger.NewAssembler(table)
	collection := ledger.NewCollection()
	store := writer.NewStore(cfg.OutputDir)
	var stats parser.Stats

	for _, capture := range input.Captures {
		result, err := assembler.Assemble(capture)
		if err != nil {
			log.Error().Err(err).Str("account", capture.AccountIdentifier).Msg("skipping account")
			continue
		}
		stats.Merge(result.Stats)
		if !collection.Add(result.Record) {
			log.Debug().Str("account", capture.AccountIdentifier).Msg("duplicate capture ignored")
			continue
		}
		path, err := store.WriteAccountCSV(result.Record, result.Rows, result.Layout)
		if err != nil {
			return err
		}
		log.Info().
			Str("account", capture.AccountIdentifier).
			Str("institution", result.Record.Institution).
			Int("transactions", len(result.Record.Transactions)).
			Str("file", path).
			Msg("account extracted")
	}

	snapshot := writer.BuildSnapshot(collection, stats, time.Now())
	if _, err := store.WriteSnapshot(snapshot); err != nil {
		return err
	}
	if _, err := store.WriteSummary(collection.Records()); err != nil {
		return err
	}
	if len(input.APICaptures) > 0 {
		points := networth.ExtractHistory(networth.CaptureLog{Captures: input.APICaptures})
		if _, err := store.WriteHistory(points); err != nil {
			return err
		}
		log.Info().Int("points", len(points)).Msg("net-worth history written")
	}

	totals := snapshot.Totals
	log.Info().
		Int("accounts", totals.Accounts).
		Int("transactions", totals.Transactions).
		Int64("netWorthMinorUnits", totals.NetWorthMinor).
		Int("amountFallbacks", stats.AmountFallbacks).
		Int("dateFallbacks", stats.DateFallbacks).
		Int("noiseSkips", stats.NoiseSkips).
		Msg("extraction complete")

	if noSync || cfg.Remote.URL == "" {
		return nil
	}

	client, err := sync.NewClient(cfg.Remote.URL, cfg.Remote.AdminKey, cfg.Remote.UserTokenIdentifier, cfg.Remote.MutationPath, log)
	if err != nil {
		log.Warn().Err(err).Msg("remote sync skipped")
		return nil
	}
	if err := client.PushSnapshot(ctx, collection.Records()); err != nil {
		// Local artifacts are already on disk; a failed push is a warning.
		log.Warn().Err(err).Msg("remote sync failed")
	}
	return nil
}
