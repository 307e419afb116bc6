package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/5w1tchy/course-library-api/internal/repository/migrations"
	"github.com/5w1tchy/course-library-api/internal/repository/sqlconnect"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	withDB := func(fn func(cmd *cobra.Command, db *sql.DB, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL not set")
			}
			db, err := sqlconnect.ConnectDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			return fn(cmd, db, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: withDB(func(cmd *cobra.Command, db *sql.DB, _ []string) error {
				if err := migrations.Up(db); err != nil {
					return err
				}
				return printVersion(cmd, db)
			}),
		},
		&cobra.Command{
			Use:   "down [n]",
			Short: "Roll back n migrations (default 1)",
			Args:  downArgs,
			RunE: withDB(func(cmd *cobra.Command, db *sql.DB, args []string) error {
				n := 1
				if len(args) == 1 {
					n, _ = strconv.Atoi(args[0])
				}
				if err := migrations.Down(db, n); err != nil {
					return err
				}
				return printVersion(cmd, db)
			}),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Roll everything back and migrate up again",
			Args:  cobra.NoArgs,
			RunE: withDB(func(cmd *cobra.Command, db *sql.DB, _ []string) error {
				if err := migrations.Reset(db); err != nil {
					return err
				}
				return printVersion(cmd, db)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: withDB(func(cmd *cobra.Command, db *sql.DB, _ []string) error {
				return printVersion(cmd, db)
			}),
		},
	)
	return cmd
}

// downArgs accepts nothing or one positive step count.
func downArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return err
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid step count %q: must be a positive integer", args[0])
		}
	}
	return nil
}

func printVersion(cmd *cobra.Command, db *sql.DB) error {
	v, dirty, err := migrations.Version(db)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if dirty {
		_, err = fmt.Fprintf(out, "schema version %d (dirty)\n", v)
		return err
	}
	_, err = fmt.Fprintf(out, "schema version %d\n", v)
	return err
}
