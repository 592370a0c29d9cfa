package history

import (
	"context"
	"time"

	"codeberg.org/mutker/errwrap/internal/errors"
	"codeberg.org/mutker/errwrap/internal/logger"
	"codeberg.org/mutker/errwrap/internal/vterror"
)

type service struct {
	repo Repository
	cfg  Config
	now  func() time.Time
}

type noopRecorder struct{}

// NewService returns a Recorder for cfg; a disabled config yields a
// recorder that discards everything.
func NewService(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("History disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return &service{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}, nil
}

// NewEntry describes a carrier produced from input by source
func NewEntry(source Source, input string, w vterror.Wrapper) *Entry {
	return &Entry{
		Source: source,
		Input:  input,
		Code:   w.ErrorCode(),
	}
}

func (s *service) Record(ctx context.Context, entry *Entry) error {
	errFactory := errors.New()

	if entry == nil || !entry.Source.IsValid() {
		return errFactory.New(ErrInvalidEntry)
	}

	if entry.Timestamp.IsZero() {
		stamped := *entry
		stamped.Timestamp = s.now()
		entry = &stamped
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Record(entry); err != nil {
			return errFactory.Wrap(ErrRecord, err)
		}
	}

	return nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	return s.repo.Recent(ctx, limit)
}

func (s *service) Close() error {
	return s.repo.Close()
}

func (*noopRecorder) Record(_ context.Context, _ *Entry) error {
	return nil
}

func (*noopRecorder) Recent(_ context.Context, _ int) ([]Entry, error) {
	return nil, nil
}

func (*noopRecorder) Close() error {
	return nil
}
