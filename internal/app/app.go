package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"codeberg.org/mutker/errwrap/internal/config"
	"codeberg.org/mutker/errwrap/internal/errors"
	"codeberg.org/mutker/errwrap/internal/history"
	"codeberg.org/mutker/errwrap/internal/hresult"
	"codeberg.org/mutker/errwrap/internal/logger"
	"codeberg.org/mutker/errwrap/internal/vterror"
)

// App turns command line inputs into error code carriers
type App struct {
	cfg      *config.Config
	conv     vterror.Converter
	recorder history.Recorder
	out      io.Writer
}

func New(cfg *config.Config, recorder history.Recorder, out io.Writer) *App {
	return &App{
		cfg:      cfg,
		conv:     NewConverter(cfg),
		recorder: recorder,
		out:      out,
	}
}

// NewConverter builds the error converter from the configured fallback
func NewConverter(p config.Provider) vterror.Converter {
	return hresult.NewConverter(p.GetFallbackHResult())
}

// Run wraps every --code, positional value and --error in that order,
// writing one line per carrier. Rejected values are logged and skipped;
// the first rejection is returned once all inputs have been processed.
func (a *App) Run(ctx context.Context) error {
	errFactory := errors.New()

	if len(a.cfg.Codes) == 0 && len(a.cfg.Values) == 0 && len(a.cfg.Errors) == 0 && a.cfg.ShowHistory == 0 {
		return errFactory.New(errors.ErrNoInput)
	}

	var firstErr error

	for _, lit := range a.cfg.Codes {
		code, ok := hresult.Parse(lit)
		if !ok {
			err := errFactory.WithData(errors.ErrInvalidArgument, lit)
			logger.ErrorWithContext(err, "app", "wrap_code").Msg("Not a 32-bit code literal")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := a.emit(ctx, history.SourceInt, lit, vterror.New(code)); err != nil {
			return err
		}
	}

	for _, raw := range a.cfg.Values {
		w, err := vterror.FromValue(DynamicValue(raw))
		if err != nil {
			var appErr errors.Error
			if errors.As(err, &appErr) {
				logger.ErrorWithContext(appErr, "vterror", "from_value").Str("input", raw).Msg("Value rejected")
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := a.emit(ctx, history.SourceValue, raw, w); err != nil {
			return err
		}
	}

	for _, msg := range a.cfg.Errors {
		w := vterror.FromError(stderrors.New(msg), a.conv)
		if err := a.emit(ctx, history.SourceError, msg, w); err != nil {
			return err
		}
	}

	if a.cfg.ShowHistory > 0 {
		if err := a.showHistory(ctx); err != nil {
			return err
		}
	}

	if firstErr != nil {
		return errFactory.Wrap(errors.ErrWrapValue, firstErr)
	}

	return nil
}

// DynamicValue turns a command line token into the dynamic value handed to
// vterror.FromValue: code literals become int32, anything else stays a string.
func DynamicValue(raw string) any {
	if code, ok := hresult.Parse(raw); ok {
		return code
	}

	return raw
}

func (a *App) emit(ctx context.Context, source history.Source, input string, w vterror.Wrapper) error {
	errFactory := errors.New()

	if _, err := fmt.Fprintf(a.out, "%s %d\n", w, w.ErrorCode()); err != nil {
		return errFactory.Wrap(errors.ErrWriteOutput, err)
	}

	logger.Debug().
		Str("source", string(source)).
		Str("input", input).
		Int32("error_code", w.ErrorCode()).
		Bool("failed", hresult.Failed(w.ErrorCode())).
		Msg("Wrapped")

	if err := a.recorder.Record(ctx, history.NewEntry(source, input, w)); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.ErrorWithContext(appErr, "history", "record").Msg("Failed to record entry")
		}
		return err
	}

	return nil
}

func (a *App) showHistory(ctx context.Context) error {
	errFactory := errors.New()

	entries, err := a.recorder.Recent(ctx, a.cfg.ShowHistory)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(a.out, "%s %-5s %s %d %q\n",
			e.Timestamp.Local().Format(time.RFC3339),
			e.Source,
			hresult.Format(e.Code),
			e.Code,
			e.Input,
		); err != nil {
			return errFactory.Wrap(errors.ErrWriteOutput, err)
		}
	}

	return nil
}
