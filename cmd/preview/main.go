package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Schedule  ScheduleCmd  `cmd:"" help:"print the rounds 1-2 schedule for a roster file"`
	Round3    Round3Cmd    `cmd:"" help:"check readiness and print the round 3 schedule for a results file"`
	Standings StandingsCmd `cmd:"" help:"print standings and bonus leaders for a results file"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("doubles-preview"),
		kong.Description("Offline schedule and standings preview for doubles cups"),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := ctx.Run(logger); err != nil {
		logger.Error("preview failed", slog.String("command", ctx.Command()), slog.Any("error", err))
		ctx.Exit(1)
	}
}
