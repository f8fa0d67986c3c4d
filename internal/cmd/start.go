package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/workorders/internal/api"
	"github.com/Iron-Ham/workorders/internal/app"
	"github.com/Iron-Ham/workorders/internal/config"
	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/errors"
	"github.com/Iron-Ham/workorders/internal/host"
	"github.com/Iron-Ham/workorders/internal/logging"
	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/tui"
	"github.com/Iron-Ham/workorders/internal/tui/styles"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the interactive client",
	Long: `Start the interactive client. It resolves the credential, loads the
contractor profile and orders, and opens the order named by the launch
parameters, if any.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	palette, err := styles.ResolvePalette(cfg.TUI.Theme)
	if err != nil {
		return errors.Wrap(err, "failed to load theme")
	}

	if err := tui.Run(rt.core, tui.Options{
		Title:  cfg.TUI.Title,
		Styles: styles.New(palette),
	}); err != nil {
		return errors.Wrap(err, "TUI error")
	}
	return nil
}

// runtime is a configured core plus the resources it holds.
type runtime struct {
	core   *app.Core
	logger *logging.Logger
}

func newRuntime(cfg *config.Config) (*runtime, error) {
	params, err := cfg.Launch.Params()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid launch parameters %q", cfg.Launch.URL)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.ResolveLogDir(), cfg.Logging.Level)
		if err != nil {
			return nil, errors.Wrap(err, "logging")
		}
	}

	hostOpts := cfg.Host.Options()
	hostOpts.OnReady = func() { logger.Debug("host signalled ready") }
	hostOpts.OnExpand = func() { logger.Debug("host asked to expand") }

	core := app.New(app.Config{
		NewService: func(cred credential.Credential) (api.Service, error) {
			return api.NewClient(cfg.API.BaseURL, cred, api.WithLogger(logger))
		},
		Host:   host.Detect(hostOpts),
		Params: params,
		Render: render.Options{TimeLayout: cfg.TUI.TimeLayout()},
		Logger: logger,
	})
	return &runtime{core: core, logger: logger}, nil
}

func (r *runtime) close() {
	_ = r.logger.Close()
}
