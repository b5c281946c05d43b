package activities

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
)

// Log writes Message for the entity at Level.
type Log struct {
	domain.Base
	Message param.Param[string]
	Level   slog.Level

	logger *slog.Logger
}

// NewLog creates a Log step. A nil logger discards output.
func NewLog(message param.Param[string], level slog.Level, logger *slog.Logger) *Log {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Log{
		Base:    domain.NewBase("Log", 0),
		Message: message,
		Level:   level,
		logger:  logger,
	}
}

func (l *Log) Run(e domain.Entity) (float64, error) {
	msg, err := l.Message.Resolve(e)
	if err != nil {
		return 0, fmt.Errorf("log message: %w", err)
	}
	attrs := []any{"arrival", e.Name()}
	if l.Tag != "" {
		attrs = append(attrs, "tag", l.Tag)
	}
	l.logger.Log(context.Background(), l.Level, msg, attrs...)
	return 0, nil
}

func (l *Log) Clone() domain.Activity {
	c := *l
	c.Base = l.Base.Copy()
	return &c
}

func (l *Log) Print(w io.Writer, indent int, verbose, brief bool) {
	l.Base.Print(w, indent, verbose, brief)
	domain.PrintArgs(w, brief, true, "message", l.Message, "level", l.Level)
}
