package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/chmouel/lazyscm/internal/buildinfo"
	"github.com/chmouel/lazyscm/internal/config"
	"github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/theme"
	urfavecli "github.com/urfave/cli/v3"
)

// buildAppFunc is replaced in tests.
var buildAppFunc = buildApp

// NewCommand returns the lazyscm command tree.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "lazyscm",
		Usage:                 "Run git source-control actions from the terminal",
		Version:               buildinfo.Version(),
		EnableShellCompletion: true,
		Flags:                 globalFlags(),
		Action:                paletteAction,
		ShellComplete:         completeGlobal,
		Commands: []*urfavecli.Command{
			{
				Name:   "palette",
				Usage:  "Pick actions from the command palette (default)",
				Action: paletteAction,
			},
			{
				Name:          "run",
				Usage:         "Run one action by id",
				ArgsUsage:     "<action-id> [args...]",
				Action:        runAction,
				ShellComplete: completeActionIDs,
			},
			{
				Name:   "actions",
				Usage:  "List the available actions",
				Action: listActions,
			},
			{
				Name:      "clone",
				Usage:     "Clone a repository",
				ArgsUsage: "[url]",
				Action: func(ctx context.Context, cmd *urfavecli.Command) error {
					args := []any{}
					if url := cmd.Args().First(); url != "" {
						args = append(args, url)
					}
					return withApp(ctx, cmd, func(ctx context.Context, app *App) error {
						return app.run(ctx, "clone", args...)
					})
				},
			},
			{
				Name:  "themes",
				Usage: "List the available themes",
				Action: func(_ context.Context, cmd *urfavecli.Command) error {
					printThemes(cmd.Root().Writer)
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(_ context.Context, cmd *urfavecli.Command) error {
					printVersion(cmd.Root().Writer)
					return nil
				},
			},
		},
	}
}

// Run executes the command tree with args.
func Run(ctx context.Context, args []string) error {
	return NewCommand().Run(ctx, args)
}

func paletteAction(ctx context.Context, cmd *urfavecli.Command) error {
	return withApp(ctx, cmd, func(ctx context.Context, app *App) error {
		return app.Palette(ctx)
	})
}

func runAction(ctx context.Context, cmd *urfavecli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("missing action id, see %s actions", cmd.Root().Name)
	}
	id := cmd.Args().First()
	args := make([]any, 0, cmd.Args().Len()-1)
	for _, arg := range cmd.Args().Tail() {
		args = append(args, arg)
	}
	return withApp(ctx, cmd, func(ctx context.Context, app *App) error {
		return app.run(ctx, id, args...)
	})
}

func listActions(ctx context.Context, cmd *urfavecli.Command) error {
	return withApp(ctx, cmd, func(_ context.Context, app *App) error {
		app.printActions(cmd.Root().Writer)
		return nil
	})
}

// run invokes id and reports actions that could not run as an error.
func (a *App) run(ctx context.Context, id string, args ...any) error {
	if _, ok := a.dispatcher.Registry().Lookup(id); !ok {
		return fmt.Errorf("unknown action %q", id)
	}
	if !a.Invoke(ctx, id, args...) {
		return urfavecli.Exit("", 1)
	}
	return nil
}

func (a *App) printActions(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSECTION\tLABEL\tREPOSITORY")
	for _, action := range a.dispatcher.Registry().Actions() {
		needs := "-"
		if action.RequiresModel {
			needs = "required"
		}
		label := action.Label
		if a.cfg.ShowIcons && action.Icon != "" {
			label = action.Icon + " " + label
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", action.ID, action.Section, label, needs)
	}
	_ = tw.Flush()
}

// withApp loads configuration, sets up logging and runs fn against a started
// App, closing it afterwards.
func withApp(ctx context.Context, cmd *urfavecli.Command, fn func(context.Context, *App) error) error {
	root, err := workspaceRoot(cmd.String("workspace"))
	if err != nil {
		return err
	}

	cfg, err := loadCLIConfig(cmd, root)
	if err != nil {
		_ = log.Close()
		return err
	}
	setupDebugLog(cmd.String("debug-log"), cfg)
	defer func() { _ = log.Close() }()

	app, err := buildAppFunc(ctx, cfg, root, cmd.Bool("plain"), !cmd.Bool("no-watch"))
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing: %v\n", err)
		}
	}()

	if err := app.Start(ctx); err != nil {
		return err
	}
	if file := cmd.String("file"); file != "" {
		if f, ok := app.host.(interface{ SetFocused(string) }); ok {
			f.SetFocused(file)
		}
	}
	return fn(ctx, app)
}

// loadCLIConfig loads configuration for root and applies the theme flag.
func loadCLIConfig(cmd *urfavecli.Command, root string) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(config.LoadOptions{
		Path:      cmd.String("config-file"),
		RepoPath:  root,
		Overrides: cmd.StringSlice("config"),
	})
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := applyThemeConfig(cfg, cmd.String("theme")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupDebugLog opens the debug log from the flag, else from config. With
// neither, buffered lines are discarded.
func setupDebugLog(flag string, cfg *config.AppConfig) {
	path := flag
	if path == "" {
		path = cfg.DebugLog
	}
	if path == "" {
		_ = log.SetFile("")
		return
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
		return
	}
	cfg.DebugLog = path
}

func workspaceRoot(flag string) (string, error) {
	if flag == "" {
		return os.Getwd()
	}
	expanded, err := config.ExpandPath(flag)
	if err != nil {
		return "", fmt.Errorf("error expanding workspace: %w", err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace %s is not a directory", expanded)
	}
	return expanded, nil
}

// applyThemeConfig applies theme configuration from command line flag.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}
	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q, available: %s", themeName, strings.Join(theme.Available(), ", "))
	}
	cfg.Theme = normalized
	return nil
}

func printThemes(w io.Writer) {
	fmt.Fprintln(w, "Available themes:")
	for _, name := range theme.Available() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

func printVersion(w io.Writer) {
	fmt.Fprint(w, buildinfo.Current())
}

