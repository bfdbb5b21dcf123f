package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chmouel/lazyscm/internal/buildinfo"
	"github.com/chmouel/lazyscm/internal/commands"
	"github.com/chmouel/lazyscm/internal/config"
	"github.com/chmouel/lazyscm/internal/dispatch"
	"github.com/chmouel/lazyscm/internal/git"
	"github.com/chmouel/lazyscm/internal/history"
	"github.com/chmouel/lazyscm/internal/log"
	"github.com/chmouel/lazyscm/internal/repository"
	"github.com/chmouel/lazyscm/internal/telemetry"
	"github.com/chmouel/lazyscm/internal/ui"
	"github.com/chmouel/lazyscm/internal/workspace"
)

// App is a wired lazyscm instance.
type App struct {
	cfg        *config.AppConfig
	host       ui.Host
	dispatcher *dispatch.Dispatcher
	binder     *workspace.Binder
	metrics    *telemetry.Prometheus
	historyDir string
	now        func() time.Time
}

// deps are the pieces that differ between the binary and tests.
type deps struct {
	host   ui.Host
	cloner commands.Cloner
	open   workspace.OpenFunc
	sink   workspace.ContentSink
	root   string
	watch  bool
}

// workspaceProxy lets handlers reach the binder, which is built after the
// dispatcher that owns them.
type workspaceProxy struct {
	binder *workspace.Binder
}

func (w *workspaceProxy) OpenRepository(ctx context.Context, path string) error {
	return w.binder.OpenRepository(ctx, path)
}

func (w *workspaceProxy) CloseRepository() {
	w.binder.CloseRepository()
}

func newApp(cfg *config.AppConfig, d deps) *App {
	app := &App{
		cfg:        cfg,
		host:       d.host,
		historyDir: history.DefaultDir(),
		now:        time.Now,
	}

	var reporter telemetry.Reporter = telemetry.Nop{}
	if cfg.Telemetry {
		app.metrics = telemetry.NewPrometheus(telemetry.WithBuild(buildinfo.Current()))
		reporter = app.metrics
	}

	proxy := &workspaceProxy{}
	cloneDir, err := config.ExpandPath(cfg.CloneDir)
	if err != nil {
		cloneDir = cfg.CloneDir
	}
	handlers := commands.New(d.host, d.cloner, proxy, commands.Options{
		DefaultRemote: cfg.DefaultRemote,
		CloneDir:      cloneDir,
		ConfirmSync:   cfg.ConfirmSync,
		ConfirmClean:  cfg.ConfirmClean,
		ShowIcons:     cfg.ShowIcons,
	})
	app.dispatcher = dispatch.New(handlers.Registry(), d.host, reporter)
	app.binder = workspace.NewBinder(d.root, d.open, app.dispatcher, d.sink, workspace.Options{
		Watch: cfg.AutoRefresh && d.watch,
	})
	proxy.binder = app.binder
	return app
}

// buildApp wires the binary: git client, terminal host and telemetry from
// cfg, rooted at the workspace directory.
func buildApp(ctx context.Context, cfg *config.AppConfig, root string, plain, watch bool) (*App, error) {
	client := git.NewClient(git.WithGitPath(cfg.GitPath), git.WithIgnored(cfg.ShowIgnored))
	if err := client.CheckVersion(ctx, git.MinimumVersion); err != nil {
		return nil, err
	}

	interactive := !plain && ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout)
	host := ui.NewTerminal(ui.TerminalOptions{
		Theme:       cfg.Theme,
		Pager:       ui.PagerCommand(cfg.Pager),
		Interactive: interactive,
		Width:       ui.TerminalWidth(os.Stdout),
		Icons:       cfg.ShowIcons,
	})

	open := func(ctx context.Context, path string) (repository.Engine, error) {
		engine, err := client.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		return engine, nil
	}

	app := newApp(cfg, deps{
		host:   host,
		cloner: client,
		open:   open,
		sink:   host,
		root:   root,
		watch:  watch,
	})
	return app, nil
}

// Start binds the workspace repository, if any.
func (a *App) Start(ctx context.Context) error {
	log.Printf("bootstrap: %s starting", buildinfo.Current().Summary())
	return a.binder.Start(ctx)
}

// Close stops watching and writes the telemetry file when one is configured.
func (a *App) Close() error {
	a.binder.Stop()
	if a.metrics == nil || a.cfg.TelemetryFile == "" {
		return nil
	}
	path, err := config.ExpandPath(a.cfg.TelemetryFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	if err := a.metrics.WriteMetrics(path); err != nil {
		return fmt.Errorf("write telemetry: %w", err)
	}
	return nil
}

// Invoke runs an action and records it in the palette history when it ran.
func (a *App) Invoke(ctx context.Context, id string, args ...any) bool {
	ran := a.dispatcher.Invoke(ctx, id, args...)
	if ran {
		a.recordUsage(id)
	}
	return ran
}

func (a *App) historyKey() string {
	return history.RepoKey(a.binder.Root())
}

func (a *App) recordUsage(id string) {
	if !a.cfg.PaletteMRU || a.historyDir == "" {
		return
	}
	key := a.historyKey()
	usage, err := history.Load(a.historyDir, key)
	if err != nil {
		log.Printf("bootstrap: load palette history: %v", err)
	}
	usage = history.Record(usage, id, a.now())
	if err := history.Save(a.historyDir, key, usage); err != nil {
		log.Printf("bootstrap: save palette history: %v", err)
	}
}
