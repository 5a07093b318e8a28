package chain

import "github.com/pkg/errors"

var (
	ErrChainMustBeSet   = errors.New("chain must be set")
	ErrLinkMustBeSet    = errors.New("link must be set")
	ErrCommandMustBeSet = errors.New("command must be set")
	ErrDuplicateLink    = errors.New("link already added")
	ErrReservedLinkName = errors.New("link name is reserved")
)
