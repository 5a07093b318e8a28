package chain

import (
	"context"

	"github.com/askiada/go-cichain/pkg/chain/command"
)

// Link is one stage of pipeline construction.
//
// Links must not keep per-run state: the same link is shared by every run of a chain,
// concurrent runs included. Everything a run produces lives in the command.
type Link interface {
	// Name identifies the link within a chain.
	Name() string
	// Perform inspects and mutates the command.
	Perform(ctx context.Context, cmd *command.Command) error
	// Break reports whether the chain must stop once the link is performed.
	Break(cmd *command.Command) bool
}

// BaseLink implements the name and a Break that never stops the chain.
// Embed it in links that only need Perform.
type BaseLink struct {
	LinkName string
}

func (b BaseLink) Name() string {
	return b.LinkName
}

func (BaseLink) Break(*command.Command) bool {
	return false
}

// LinkFunc adapts a function to a Link that never breaks.
func LinkFunc(name string, fn func(ctx context.Context, cmd *command.Command) error) Link {
	return &funcLink{BaseLink: BaseLink{LinkName: name}, fn: fn}
}

type funcLink struct {
	BaseLink
	fn func(ctx context.Context, cmd *command.Command) error
}

func (l *funcLink) Perform(ctx context.Context, cmd *command.Command) error {
	return l.fn(ctx, cmd)
}
