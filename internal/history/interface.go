package history

import (
	"context"
	"time"
)

// Recorder journals wrapped error codes
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Repository is the storage behind a Recorder
type Repository interface {
	Record(entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Source names the constructor that produced a code
type Source string

const (
	SourceInt   Source = "int"
	SourceValue Source = "value"
	SourceError Source = "error"
)

// IsValid reports whether s is a known source
func (s Source) IsValid() bool {
	switch s {
	case SourceInt, SourceValue, SourceError:
		return true
	default:
		return false
	}
}

type Entry struct {
	Timestamp time.Time
	Source    Source
	Input     string
	Code      int32
}
