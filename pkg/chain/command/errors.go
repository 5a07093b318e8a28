package command

import "github.com/pkg/errors"

var (
	ErrMissingPrecondition = errors.New("missing precondition")
	ErrUnknownPipelineKind = errors.New("unknown pipeline kind")
)
