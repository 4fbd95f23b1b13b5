package main

import (
	"context"

	"github.com/alecgard/candor/internal/config"
	"github.com/alecgard/candor/internal/seed"
	"github.com/alecgard/candor/internal/team"
	"github.com/alecgard/candor/internal/user"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo manager, team and employees if the database is empty",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	setupLogger(cfg.Log.Level)

	ctx := context.Background()
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	_, err = seed.Demo(ctx, user.NewStore(pool), team.NewStore(pool))
	return err
}
