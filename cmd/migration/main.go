package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/toto-league/internal/config"
	"github.com/riskibarqy/toto-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/toto-league/internal/platform/logging"
)

var logger = logging.New(logging.Options{
	Level:  logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")),
	Format: logging.ParseFormat(os.Getenv("APP_LOG_FORMAT")),
}).Named("migration")

type env struct {
	dbURL         string
	migrationsDir string
	args          []string
}

type command struct {
	usage string
	run   func(env) error
}

var commands = map[string]command{
	"up":      {usage: "up", run: runUp},
	"down":    {usage: "down [steps]", run: runDown},
	"version": {usage: "version", run: runVersion},
	"force":   {usage: "force <version>", run: runForce},
	"goto":    {usage: "goto <version>", run: runGoto},
	"migrate": {usage: "migrate <version>", run: runGoto},
	"seed":    {usage: "seed", run: runSeed},
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(os.Args[1]))]
	if !ok {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		fatal("load env file", "error", err)
	}
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		fatal("DB_URL is required")
	}
	dir, err := resolveMigrationsDir(os.Getenv("MIGRATIONS_DIR"), os.Getenv("MIGRATIONS_PATH"), "./db/migrations", "/app/db/migrations")
	if err != nil {
		fatal("resolve migrations dir", "error", err)
	}

	if err := cmd.run(env{dbURL: dbURL, migrationsDir: dir, args: os.Args[2:]}); err != nil {
		fatal("migration command failed", "command", os.Args[1], "error", err)
	}
	_ = logger.Sync()
}

func fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	_ = logger.Sync()
	os.Exit(1)
}

func withMigrator(e env, fn func(*migrate.Migrate) error) error {
	sourceURL := "file://" + filepath.ToSlash(e.migrationsDir)
	m, err := migrate.New(sourceURL, e.dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("close migration source", "error", srcErr)
		}
		if dbErr != nil {
			logger.Warn("close migration db", "error", dbErr)
		}
	}()
	return fn(m)
}

// ignoreNoChange treats an already current schema as success.
func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func runUp(e env) error {
	return withMigrator(e, func(m *migrate.Migrate) error {
		if err := ignoreNoChange(m.Up()); err != nil {
			return err
		}
		logger.Info("migrations applied", "dir", e.migrationsDir)
		return nil
	})
}

func runDown(e env) error {
	steps, err := parseSteps(e.args)
	if err != nil {
		return err
	}
	return withMigrator(e, func(m *migrate.Migrate) error {
		if err := ignoreNoChange(m.Steps(-steps)); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
		return nil
	})
}

func runVersion(e env) error {
	return withMigrator(e, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
		return nil
	})
}

func runForce(e env) error {
	if len(e.args) == 0 {
		return fmt.Errorf("force requires a version argument")
	}
	version, err := parseVersion(e.args[0])
	if err != nil {
		return err
	}
	return withMigrator(e, func(m *migrate.Migrate) error {
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced version", "version", version)
		return nil
	})
}

func runGoto(e env) error {
	if len(e.args) == 0 {
		return fmt.Errorf("goto requires a target version argument")
	}
	target, err := parseTarget(e.args[0])
	if err != nil {
		return err
	}
	return withMigrator(e, func(m *migrate.Migrate) error {
		if err := ignoreNoChange(m.Migrate(target)); err != nil {
			return err
		}
		logger.Info("migrated", "version", target)
		return nil
	})
}

// runSeed loads the demo tournament when the questions table is empty.
func runSeed(e env) error {
	db, err := sqlx.Open("postgres", e.dbURL)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return err
	}
	logger.Info("demo data seeded")
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

// resolveMigrationsDir returns the first candidate that is an existing
// directory. Blank candidates are skipped.
func resolveMigrationsDir(candidates ...string) (string, error) {
	checked := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		checked = append(checked, candidate)
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked %s)", strings.Join(checked, ", "))
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <command> [args]\ncommands:\n", name)
	for _, key := range []string{"up", "down", "version", "force", "goto", "seed"} {
		fmt.Fprintf(w, "  %s %s\n", name, commands[key].usage)
	}
}
