package main

import (
	"flag"
	"fmt"
	"os"

	"gamedex/internal/config"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	configPath := flag.String("config", "", "read the configuration from this file instead of the user config dir")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help())
		flag.PrintDefaults()
	}
	flag.Parse()

	var cmd func(*config.Config, *logrus.Logger) error
	switch flag.Arg(0) {
	case "version":
		fmt.Fprintf(os.Stdout, "gamedex %s\n", Version)
		return
	case "help":
		fmt.Fprint(os.Stdout, help())
		return
	case "serve":
		cmd = serve
	case "migrate":
		cmd = migrateUp
	case "dev:fixtures":
		cmd = loadFixtures
	case "browse":
		cmd = func(conf *config.Config, log *logrus.Logger) error {
			return browse(conf, log, flag.Arg(1), os.Stdout)
		}
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}

	conf, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	log := conf.Logger()
	if err := cmd(conf, log); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	var (
		conf *config.Config
		err  error
	)
	if path == "" {
		conf, err = config.NewFromUserConfigDir()
	} else {
		conf = &config.Config{}
		err = conf.ReloadFromFile(path)
	}
	if err != nil {
		return nil, err
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return conf, nil
}

func help() string {
	return fmt.Sprintf(`
gamedex serves a catalog of games over a JSON API and a small web client.

Usage: %[1]s [-config FILE] COMMAND [ARGS…]

COMMANDS
    browse [PATH]  render the client view for PATH (default /games) using a
                   running server
    dev:fixtures   create default data for quick testing during development
    help           display this help
    migrate        apply pending database migrations
    serve          start the HTTP server
    version        display the current version

`,
		os.Args[0],
	)
}
