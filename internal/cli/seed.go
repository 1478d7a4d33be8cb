package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"checklist-assessment-service/internal/logger"
)

// NewSeedCmd inserts randomized submissions into the configured storage.
func NewSeedCmd(configPath *string) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert dummy submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive")
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Format)
			defer log.Sync()

			rt, err := openRuntime(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer rt.Close()

			_, _, _, seeder := rt.services()
			for i := 0; i < count; i++ {
				id, err := seeder.CreateDummy(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			log.Info("seeded submissions", zap.Int("count", count))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of submissions to create")
	return cmd
}
