package command

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/askiada/go-cichain/pkg/chain/seed"
)

// Pipeline describes the pipeline being built.
type Pipeline struct {
	ID   int64
	Ref  string
	SHA  string
	Tag  bool
	Kind PipelineKind
}

// ChatData is the payload of a pipeline created from a chat command.
type ChatData struct {
	Command string
}

// Command is the mutable context shared by all the links of a chain run.
type Command struct {
	ID       string
	Pipeline Pipeline
	// Content is the raw CI configuration.
	Content  []byte
	Message  string
	ChatData *ChatData

	Stages []string
	Jobs   Jobs
	Seeds  []*seed.Stage
	// Skipped is set when the pipeline creation was skipped on purpose.
	Skipped bool

	errors   []string
	warnings []string
}

// Option configures a Command.
type Option func(c *Command)

// WithContent sets the raw CI configuration.
func WithContent(content []byte) Option {
	return func(c *Command) {
		c.Content = content
	}
}

// WithJobs sets already parsed job definitions.
func WithJobs(jobs Jobs) Option {
	return func(c *Command) {
		c.Jobs = jobs
	}
}

// WithStages sets the declared stages.
func WithStages(stages ...string) Option {
	return func(c *Command) {
		c.Stages = stages
	}
}

func WithChatData(chatCommand string) Option {
	return func(c *Command) {
		c.ChatData = &ChatData{Command: chatCommand}
	}
}

func WithMessage(message string) Option {
	return func(c *Command) {
		c.Message = message
	}
}

// New creates a command for one pipeline-creation attempt.
func New(pipeline Pipeline, opts ...Option) *Command {
	cmd := &Command{
		ID:       uuid.NewString(),
		Pipeline: pipeline,
	}
	for _, opt := range opts {
		opt(cmd)
	}

	return cmd
}

// RequireJobs returns the parsed job definitions or ErrMissingPrecondition when they were never parsed.
func (c *Command) RequireJobs() (Jobs, error) {
	if c.Jobs == nil {
		return nil, errors.Wrap(ErrMissingPrecondition, "jobs have not been parsed")
	}

	return c.Jobs, nil
}

// Error records a pipeline error. Links break on errors.
func (c *Command) Error(message string) {
	c.errors = append(c.errors, message)
}

func (c *Command) Errors() []string {
	return c.errors
}

func (c *Command) HasErrors() bool {
	return len(c.errors) > 0
}

// Warn records a message that does not stop the chain.
func (c *Command) Warn(message string) {
	c.warnings = append(c.warnings, message)
}

func (c *Command) Warnings() []string {
	return c.warnings
}

// SeedContext returns the context seeds are evaluated in.
func (c *Command) SeedContext() seed.Context {
	return seed.Context{
		Ref:    c.Pipeline.Ref,
		Tag:    c.Pipeline.Tag,
		Source: c.Pipeline.Kind.RefsKeyword(),
	}
}
