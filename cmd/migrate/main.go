// Command migrate manages the gstrecon schema.
//
// Usage: go run ./cmd/migrate [-dir db/migrations] up|down|steps N|force V|version
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"gstrecon/internal/config"
)

const usage = "usage: migrate [-dir path] up|down|steps N|force V|version"

func main() {
	dir := flag.String("dir", "db/migrations", "directory holding the SQL migrations")
	flag.Parse()

	if err := run(*dir, flag.Args()); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run(dir string, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	m, err := migrate.New("file://"+dir, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("opening migrations in %s: %w", dir, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("migrate: close: source=%v db=%v", srcErr, dbErr)
		}
	}()

	switch args[0] {
	case "up":
		return applied("up", m.Up())
	case "down":
		return applied("down", m.Down())
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return applied(fmt.Sprintf("steps %d", n), m.Steps(n))
	case "force":
		v, err := intArg(args)
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force %d: %w", v, err)
		}
		log.Printf("migrate: version forced to %d", v)
		return nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q; %s", args[0], usage)
	}
}

// applied reports the outcome of a schema change. Nothing to do is success.
func applied(what string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("migrate: %s: no change", what)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	log.Printf("migrate: %s applied", what)
	return nil
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s needs a number", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", args[0], args[1])
	}
	return n, nil
}
