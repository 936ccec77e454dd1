package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/internal/migrations"
	"github.com/amirasaad/fintrack/pkg/config"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	steps := fs.Int("steps", 1, "number of migrations to roll back with down")
	envFile := fs.String("env", ".env", "environment file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: migrate [-steps N] [-env FILE] up|down|version")
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close() //nolint: errcheck

	switch cmd := fs.Arg(0); cmd {
	case "up":
		if err := migrations.Up(sqlDB); err != nil {
			return err
		}
		log.Info("migrations applied")
	case "down":
		if err := migrations.Down(sqlDB, *steps); err != nil {
			return err
		}
		log.Info("migrations rolled back", "steps", *steps)
	case "version":
		m, err := migrations.New(sqlDB)
		if err != nil {
			return err
		}
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("schema version", "version", version, "dirty", dirty)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
