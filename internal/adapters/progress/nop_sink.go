package progress

import (
	"context"

	"github.com/musdomains/domains/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink, used with --json and
// --non-interactive
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

func (n *NopSink) OnProgress(context.Context, usecase.ProgressEvent) {}
func (n *NopSink) Info(string)                                       {}

// Ensure NopSink implements ProgressSink
var _ usecase.ProgressSink = (*NopSink)(nil)
