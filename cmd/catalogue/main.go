// Command catalogue loads lookup data and wines into the cookbook database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cuisine/internal/config"
	"cuisine/internal/db"
	applog "cuisine/internal/log"
)

// openDatabaseFunc opens the configured database; tests swap it out.
var openDatabaseFunc = func() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	database, err := db.Configure(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}

type rootOptions struct {
	dryRun bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "catalogue",
		Short:         "Load catalogue data into the cookbook database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "parse the input without writing to the database")

	cmd.AddCommand(newSeedCommand(opts))
	cmd.AddCommand(newWinesCommand(opts))
	return cmd
}

func main() {
	cmd := newRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "catalogue: %v\n", err)
		os.Exit(1)
	}
}

// result counts what a load did.
type result struct {
	created int
	updated int
}

func (r result) String() string {
	return fmt.Sprintf("%d created, %d updated", r.created, r.updated)
}

func (r *result) add(created bool) {
	if created {
		r.created++
	} else {
		r.updated++
	}
}
