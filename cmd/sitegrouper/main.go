package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegrouper/internal/config"
	"git.home.luguber.info/inful/sitegrouper/internal/logfields"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Groups struct {
		Node    string `short:"n" help:"Content-relative node path to inspect" default:"."`
		Metrics bool   `help:"Print grouping metrics after the run"`
	} `cmd:"" help:"Build groupings and print the groups present under a node"`

	Resources struct {
		Grouping string `arg:"" help:"Grouping name to enumerate"`
		Node     string `short:"n" help:"Content-relative node path to inspect" default:"."`
	} `cmd:"" help:"List a node's resources in grouped order"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	buildID := uuid.NewString()
	slog.SetDefault(logger.With(logfields.BuildID(buildID)))

	switch ctx.Command() {
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Failed to initialize configuration", logfields.Error(err))
			os.Exit(1)
		}
		slog.Info("Configuration file created", logfields.Path(CLI.Config))

	case "groups":
		if err := runGroups(context.Background(), buildID, CLI.Groups.Node, CLI.Groups.Metrics); err != nil {
			slog.Error("Failed to build groupings", logfields.Error(err))
			os.Exit(1)
		}

	case "resources <grouping>":
		if err := runResources(context.Background(), buildID, CLI.Resources.Grouping, CLI.Resources.Node); err != nil {
			slog.Error("Failed to list resources", logfields.Error(err))
			os.Exit(1)
		}

	default:
		slog.Error("Unknown command", logfields.Name(ctx.Command()))
		os.Exit(1)
	}
}
