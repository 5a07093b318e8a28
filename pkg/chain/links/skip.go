package links

import (
	"context"
	"regexp"

	"github.com/askiada/go-cichain/pkg/chain/command"
)

const SkipName = "skip"

var skipPattern = regexp.MustCompile(`(?i)\[(ci[ _-]skip|skip[ _-]ci)\]`)

// Skip stops the chain when the commit message asks to skip CI.
type Skip struct{}

func NewSkip() *Skip {
	return &Skip{}
}

func (*Skip) Name() string {
	return SkipName
}

func (*Skip) Perform(_ context.Context, cmd *command.Command) error {
	if skipPattern.MatchString(cmd.Message) {
		cmd.Skipped = true
	}

	return nil
}

func (*Skip) Break(cmd *command.Command) bool {
	return cmd.Skipped
}
