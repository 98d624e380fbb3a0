package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/thushan/ollaview/internal/app/viewer"
	"github.com/thushan/ollaview/internal/config"
	"github.com/thushan/ollaview/internal/core/domain"
	"github.com/thushan/ollaview/internal/core/ports"
	"github.com/thushan/ollaview/internal/logger"
	"github.com/thushan/ollaview/internal/util"
	"github.com/thushan/ollaview/theme"
)

// Application represents the ollaview application
type Application struct {
	config   *config.Config
	logger   *logger.StyledLogger
	lister   ports.ModelLister
	recorder ports.RefreshRecorder
	theme    *theme.Theme

	out         io.Writer
	errOut      io.Writer
	interactive bool
}

// New creates a new application instance
func New(cfg *config.Config, logger *logger.StyledLogger, lister ports.ModelLister, recorder ports.RefreshRecorder) *Application {
	return &Application{
		config:      cfg,
		logger:      logger,
		lister:      lister,
		recorder:    recorder,
		theme:       theme.GetTheme(cfg.Theme),
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: util.IsInteractive(),
	}
}

// Run shows the viewer until the user quits or ctx is cancelled. Without a
// terminal it fetches once and prints the table instead.
func (a *Application) Run(ctx context.Context) error {
	if !a.interactive {
		return a.printOnce(ctx)
	}

	a.logger.Info("Starting viewer", "title", a.config.Window.Title)

	model := viewer.New(viewer.Options{
		Context:  ctx,
		Lister:   a.lister,
		Recorder: a.recorder,
		Logger:   a.logger,
		Theme:    a.theme,
		Window:   a.config.Window,
		Icon:     viewer.LoadIcon(a.config.Window.IconFile),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("viewer stopped unexpectedly: %w", err)
	}
	return nil
}

func (a *Application) printOnce(ctx context.Context) error {
	list, err := a.lister.ListModels(ctx)
	if err == nil && list == nil {
		list = &domain.ModelList{}
	}
	if err != nil {
		a.recordFailure(err)
	} else if a.recorder != nil {
		a.recorder.RecordSuccess(list)
	}

	data := pterm.TableData{viewer.Columns()}
	for _, row := range viewer.ResultRows(list, err) {
		data = append(data, []string(row))
	}

	rendered, rerr := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if rerr != nil {
		return fmt.Errorf("unable to render model table: %w", rerr)
	}
	fmt.Fprintln(a.out, rendered)

	if err != nil {
		fmt.Fprintln(a.errOut, pterm.Error.Sprint(viewer.DialogMessage(err)))
		return err
	}

	a.logger.InfoWithCount("Listed models", list.Len(), "endpoint", list.Endpoint, "latency", list.Latency)
	return nil
}

func (a *Application) recordFailure(err error) {
	kind := domain.KindOf(err)
	if a.recorder != nil {
		a.recorder.RecordFailure(kind)
	}
	a.logger.Error("Unable to list models", "kind", kind.String(), "error", err)
}
