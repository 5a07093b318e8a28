package model

import (
	"context"
	"time"
)

// ChainOption defines the interface for chain options.
type ChainOption interface {
	// New initialises the chain option.
	New() error
	// PrepareLink runs when a link is added to the chain. parentLink is the start link for the first one.
	PrepareLink(parentLink, link *LinkInfo) error

	chainRunOption
	chainLinkOption
}

// chainRunOption defines the interface for run options at the chain level.
type chainRunOption interface {
	// BeforeRun runs before the first link is performed. The returned context is used for the whole run.
	BeforeRun(ctx context.Context, run *RunInfo) (context.Context, error)
	// Finish runs after the run reached a terminal state.
	Finish(ctx context.Context, run *RunInfo, totalDuration time.Duration) error
}

// chainLinkOption defines the interface for link options at the chain level.
type chainLinkOption interface {
	// BeforeLink runs before the link is performed. The returned context is passed to the link.
	BeforeLink(ctx context.Context, run *RunInfo, link *LinkInfo) (context.Context, error)
	// AfterLink runs after the link is performed, with the error the link returned if any.
	AfterLink(ctx context.Context, run *RunInfo, link *LinkInfo, elapsed time.Duration, linkErr error) error
}
