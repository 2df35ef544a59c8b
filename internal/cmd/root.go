// Package cmd wires the command-line interface: configuration, the
// structured logger and the shared parser behind the subcommands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bitzorro/relstring/internal/config"
	"github.com/bitzorro/relstring/internal/match"
	"github.com/bitzorro/relstring/internal/parser"
	"github.com/bitzorro/relstring/internal/relcache"
)

var (
	cfgPath  string
	logLevel string
	logFile  string

	cfg config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:           "relstring",
	Short:         "Parse scene release names into structured episode data",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFile != "" {
			cfg.Log.File = logFile
		}
		return setupLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.relstring/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also log to this file, with rotation")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	out := io.Writer(os.Stderr)
	if cfg.Log.File != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			Compress:   cfg.Log.Compress,
		})
	}
	log.SetOutput(out)
	return nil
}

func newParser() *parser.Parser {
	return parser.New(parser.Options{
		ExpectedTitles: cfg.Parser.ExpectedTitles,
		ExpectedGroups: cfg.Parser.ExpectedGroups,
		Logger:         log,
	})
}

func newCache(p *parser.Parser) *relcache.Cache {
	return relcache.New(p,
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
		time.Duration(cfg.Cache.CleanupMinutes)*time.Minute)
}

// resolveShowType applies the configured anime list: when the caller
// gave no explicit type and the first parse lands on a known anime
// series, the name is reparsed with the anime preference.
func resolveShowType(p *parser.Parser, name string, hint match.ShowType) parser.Result {
	result := p.Parse(name, hint)
	if hint != match.ShowTypeUnknown || result.SeriesName == "" {
		return result
	}
	for _, show := range cfg.AnimeShows {
		if strings.EqualFold(show, result.SeriesName) {
			return p.Parse(name, match.ShowTypeAnime)
		}
	}
	return result
}
