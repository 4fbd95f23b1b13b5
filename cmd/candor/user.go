package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecgard/candor/internal/config"
	"github.com/alecgard/candor/internal/user"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var (
	setPasswordEmail    string
	setPasswordPassword string
)

var setPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Replace a user's password",
	RunE:  runSetPassword,
}

func init() {
	setPasswordCmd.Flags().StringVar(&setPasswordEmail, "email", "", "email of the account")
	setPasswordCmd.Flags().StringVar(&setPasswordPassword, "password", "", "new password")
	_ = setPasswordCmd.MarkFlagRequired("email")
	_ = setPasswordCmd.MarkFlagRequired("password")

	userCmd.AddCommand(setPasswordCmd)
	rootCmd.AddCommand(userCmd)
}

func runSetPassword(cmd *cobra.Command, args []string) error {
	if len(setPasswordPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

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

	store := user.NewStore(pool)
	u, err := store.GetByEmail(ctx, setPasswordEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("no user with email %q", setPasswordEmail)
	}
	if err != nil {
		return err
	}

	if err := store.SetPassword(ctx, u.ID, setPasswordPassword); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", u.Email)
	return nil
}
