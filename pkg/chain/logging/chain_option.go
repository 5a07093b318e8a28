// Package logging provides a chain option writing structured logs with logrus.
package logging

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/askiada/go-cichain/pkg/chain/model"
)

type chainLogger struct {
	logger logrus.FieldLogger
}

func (cl *chainLogger) New() error {
	return nil
}

func (cl *chainLogger) PrepareLink(parentLink, link *model.LinkInfo) error {
	cl.logger.WithFields(logrus.Fields{
		"link":   link.Name,
		"index":  link.Index,
		"parent": parentLink.Name,
	}).Debug("link added")

	return nil
}

func (cl *chainLogger) BeforeRun(ctx context.Context, run *model.RunInfo) (context.Context, error) {
	runFields(cl.logger, run).Info("chain run started")

	return ctx, nil
}

func (cl *chainLogger) BeforeLink(ctx context.Context, run *model.RunInfo, link *model.LinkInfo) (context.Context, error) {
	runFields(cl.logger, run).WithField("link", link.Name).Debug("performing link")

	return ctx, nil
}

func (cl *chainLogger) AfterLink(_ context.Context, run *model.RunInfo, link *model.LinkInfo, elapsed time.Duration, linkErr error) error {
	entry := runFields(cl.logger, run).WithFields(logrus.Fields{
		"link":    link.Name,
		"elapsed": elapsed,
	})

	switch {
	case linkErr != nil:
		entry.WithError(linkErr).Error("link failed")
	case run.State == model.StateBroken:
		entry.Info("link stopped the chain")
	default:
		entry.Debug("link performed")
	}

	return nil
}

func (cl *chainLogger) Finish(_ context.Context, run *model.RunInfo, totalDuration time.Duration) error {
	entry := runFields(cl.logger, run).WithFields(logrus.Fields{
		"state":   run.State,
		"elapsed": totalDuration,
	})

	switch run.State {
	case model.StateFailed:
		entry.WithError(run.Err).Error("chain run failed")
	case model.StateBroken:
		entry.WithField("broken_at", run.BrokenAt).Info("chain run stopped early")
	case model.StatePending, model.StateRunning, model.StateCompleted:
		entry.Info("chain run completed")
	}

	return nil
}

func runFields(logger logrus.FieldLogger, run *model.RunInfo) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"command_id": run.CommandID,
		"kind":       run.Kind,
	})
}

// ChainLogger logs every run and link of a chain. A nil logger uses the logrus standard logger.
func ChainLogger(logger logrus.FieldLogger) model.ChainOption {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &chainLogger{logger: logger}
}
