package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/weeks/internal"
	"github.com/starford/weeks/internal/models"
	"github.com/starford/weeks/internal/planner"
	pkgconfig "github.com/starford/weeks/pkg/config"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version)); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

// openSession opens the planner for a one-shot command. Logs go to stderr.
func openSession(cmd *cli.Command) (*internal.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := internal.NewLogger(os.Stderr, cfg.App.LogLevel)
	return internal.Open(cfg, logger)
}

func printWeek(ctx context.Context, cmd *cli.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	view, err := sess.Service.WeekAt(ctx, int(cmd.Int("offset")))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(os.Stdout, view)
	}

	w := os.Stdout
	fmt.Fprintln(w, view.Main.Caption)
	for _, d := range view.Main.Dates {
		marker := " "
		if d.Day == view.Today {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, d.Full)
	}
	printItems(w, view.Items)
	return nil
}

func printYear(ctx context.Context, cmd *cli.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	var view *planner.YearView
	if year := cmd.Int("year"); year != 0 {
		view, err = sess.Service.Year(ctx, int(year))
	} else {
		view, err = sess.Service.CurrentYear(ctx)
	}
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(os.Stdout, view)
	}

	w := os.Stdout
	fmt.Fprintf(w, "%s %s\n", view.Calendar.Name, view.YearText)
	printItems(w, view.Items)
	return nil
}

func printItems(w io.Writer, items []models.ItemView) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(no items)")
		return
	}
	for _, it := range items {
		box := "[ ]"
		if it.Done {
			box = "[x]"
		}
		if it.Objective != nil {
			fmt.Fprintf(w, "%s %d %s (%s)\n", box, it.ID, it.Text, it.Objective.Text)
			continue
		}
		fmt.Fprintf(w, "%s %d %s\n", box, it.ID, it.Text)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	cmd := &cli.Command{
		Name:    "weeks",
		Usage:   "Week and year planner with Gregorian, Persian, Chinese and Hijri calendars",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve planner tools over MCP on stdin/stdout",
				Action: serveMCP,
			},
			{
				Name:  "week",
				Usage: "Print a week and its items",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Weeks from the current week"},
					&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of text"},
				},
				Action: printWeek,
			},
			{
				Name:  "year",
				Usage: "Print the objectives of a year",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "Year of the main calendar (default: current)"},
					&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of text"},
				},
				Action: printYear,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
