// Command migration applies the save slot and hall of fame schema in db/migrations.
package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

var migrationDirCandidates = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	logger := logging.New(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")), logging.Options{Stderr: true})
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	if err := run(logger, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		logger.Error("migration failed", "command", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(logger *logging.Logger, command string, args []string) error {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	dbURL = withApplicationName(dbURL, envOr("DB_APPLICATION_NAME", "footy-career-migration"))

	dir, err := migrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		return err
	}
	source := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(source, dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	switch strings.ToLower(strings.TrimSpace(command)) {
	case "up":
		if err := ignoreNoChange(logger, m.Up()); err != nil {
			return err
		}
		logger.Info("migrations applied", "source", source)
	case "down":
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		if err := ignoreNoChange(logger, m.Steps(-steps)); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
	case "force":
		if len(args) == 0 {
			return fmt.Errorf("force requires a version argument")
		}
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("migration version forced", "version", version)
	case "goto":
		if len(args) == 0 {
			return fmt.Errorf("goto requires a target version argument")
		}
		target, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(logger, m.Migrate(uint(target))); err != nil {
			return err
		}
		logger.Info("migrated", "version", target)
	default:
		return errUsage
	}
	return nil
}

func ignoreNoChange(logger *logging.Logger, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
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

func migrationsDir(override string) (string, error) {
	candidates := migrationDirCandidates
	if override = strings.TrimSpace(override); override != "" {
		candidates = []string{override}
	}
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked %s)", strings.Join(candidates, ", "))
}

// withApplicationName labels migration sessions in pg_stat_activity.
func withApplicationName(raw, name string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || name == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("application_name") == "" {
		query.Set("application_name", name)
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down [steps]|version|force <version>|goto <version>>\n", name)
}
