package chain_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/askiada/go-cichain/pkg/chain"
	"github.com/askiada/go-cichain/pkg/chain/command"
	"github.com/askiada/go-cichain/pkg/chain/model"
)

// spyLink counts its calls and appends its name to the command warnings.
type spyLink struct {
	name     string
	mu       sync.Mutex
	calls    int
	err      error
	breaking bool
}

func (s *spyLink) Name() string {
	return s.name
}

func (s *spyLink) Perform(_ context.Context, cmd *command.Command) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	cmd.Warn(s.name)

	return s.err
}

func (s *spyLink) Break(*command.Command) bool {
	return s.breaking
}

func (s *spyLink) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func newChain(t *testing.T, links ...chain.Link) *chain.Chain {
	t.Helper()

	ch, err := chain.New()
	if err != nil {
		t.Fatal(err)
	}

	for _, link := range links {
		if err := chain.AddLink(ch, link); err != nil {
			t.Fatal(err)
		}
	}

	return ch
}

func newCommand() *command.Command {
	return command.New(command.Pipeline{Ref: "main", Kind: command.KindPush})
}

// recordingOption records every hook call as "<hook>:<link>".
type recordingOption struct {
	mu        sync.Mutex
	calls     []string
	states    []model.State
	beforeErr error
}

func (r *recordingOption) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recordingOption) New() error {
	r.record("new")

	return nil
}

func (r *recordingOption) PrepareLink(parentLink, link *model.LinkInfo) error {
	r.record("prepare:" + parentLink.Name + ">" + link.Name)

	return nil
}

func (r *recordingOption) BeforeRun(ctx context.Context, _ *model.RunInfo) (context.Context, error) {
	r.record("before_run")

	return ctx, nil
}

func (r *recordingOption) BeforeLink(ctx context.Context, _ *model.RunInfo, link *model.LinkInfo) (context.Context, error) {
	r.record("before:" + link.Name)

	return ctx, r.beforeErr
}

func (r *recordingOption) AfterLink(_ context.Context, _ *model.RunInfo, link *model.LinkInfo, _ time.Duration, linkErr error) error {
	if linkErr != nil {
		r.record("after:" + link.Name + ":error")

		return nil
	}

	r.record("after:" + link.Name)

	return nil
}

func (r *recordingOption) Finish(_ context.Context, run *model.RunInfo, _ time.Duration) error {
	r.record("finish")
	r.mu.Lock()
	r.states = append(r.states, run.State)
	r.mu.Unlock()

	return nil
}
