package main

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-cichain/pkg/chain"
	"github.com/askiada/go-cichain/pkg/chain/command"
	"github.com/askiada/go-cichain/pkg/chain/drawer"
	"github.com/askiada/go-cichain/pkg/chain/links"
	"github.com/askiada/go-cichain/pkg/chain/logging"
	"github.com/askiada/go-cichain/pkg/chain/measure"
	"github.com/askiada/go-cichain/pkg/chain/model"
	"github.com/askiada/go-cichain/pkg/chain/tracing"
)

type runOptions struct {
	configPaths []string
	concurrency int
	kind        string
	ref         string
	sha         string
	tag         bool
	chatCommand string
	message     string
	links       []string
	dotPath     string
	trace       bool
}

type stageReport struct {
	Name string   `yaml:"name"`
	Jobs []string `yaml:"jobs"`
}

type report struct {
	Config    string        `yaml:"config"`
	CommandID string        `yaml:"command_id"`
	Kind      string        `yaml:"kind"`
	State     model.State   `yaml:"state"`
	BrokenAt  string        `yaml:"broken_at,omitempty"`
	Skipped   bool          `yaml:"skipped,omitempty"`
	Errors    []string      `yaml:"errors,omitempty"`
	Warnings  []string      `yaml:"warnings,omitempty"`
	Stages    []stageReport `yaml:"stages,omitempty"`
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a chain against CI configuration files and print the resulting stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChain(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := runCmd.Flags()
	flags.StringSliceVarP(&opts.configPaths, "config", "c", []string{".gitlab-ci.yml"}, "paths of the CI configurations")
	flags.IntVar(&opts.concurrency, "concurrency", 1, "number of configurations processed at the same time")
	flags.StringVar(&opts.kind, "kind", command.KindPush.String(), "pipeline kind")
	flags.StringVar(&opts.ref, "ref", "main", "ref the pipeline runs for")
	flags.StringVar(&opts.sha, "sha", "", "commit the pipeline runs for")
	flags.BoolVar(&opts.tag, "tag", false, "whether the ref is a tag")
	flags.StringVar(&opts.chatCommand, "chat-command", "", "chat command of a chat pipeline")
	flags.StringVarP(&opts.message, "message", "m", "", "commit message")
	flags.StringSliceVar(&opts.links, "links", links.DefaultNames, "links of the chain, in order")
	flags.StringVar(&opts.dotPath, "dot", "", "write the chain graph to this DOT file")
	flags.BoolVar(&opts.trace, "trace", false, "print OpenTelemetry spans to stderr")

	return runCmd
}

func newCommands(opts runOptions) ([]*command.Command, error) {
	kind, err := command.ParsePipelineKind(opts.kind)
	if err != nil {
		return nil, err
	}

	cmds := make([]*command.Command, 0, len(opts.configPaths))
	for _, path := range opts.configPaths {
		cmd, err := newCommand(opts, kind, path)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, cmd)
	}

	return cmds, nil
}

func newCommand(opts runOptions, kind command.PipelineKind, path string) (*command.Command, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	cmdOpts := []command.Option{command.WithContent(content), command.WithMessage(opts.message)}
	if kind.IsChat() {
		cmdOpts = append(cmdOpts, command.WithChatData(opts.chatCommand))
	}

	return command.New(command.Pipeline{
		Ref:  opts.ref,
		SHA:  opts.sha,
		Tag:  opts.tag,
		Kind: kind,
	}, cmdOpts...), nil
}

func newChain(opts runOptions, errOut io.Writer) (*chain.Chain, func(context.Context) error, error) {
	chainOpts := []model.ChainOption{logging.ChainLogger(logrus.StandardLogger())}
	shutdown := func(context.Context) error { return nil }

	if opts.dotPath != "" {
		msr := measure.NewDefaultMeasure()
		chainOpts = append(chainOpts,
			measure.ChainMeasure(msr),
			drawer.ChainDrawer(drawer.NewDOTDrawer(opts.dotPath), msr),
		)
	}

	if opts.trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(errOut), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to create trace exporter")
		}

		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		shutdown = tp.Shutdown
		chainOpts = append(chainOpts, tracing.ChainTracer(tp))
	}

	ch, err := chain.New(chainOpts...)
	if err != nil {
		return nil, nil, err
	}

	chainLinks, err := links.Build(opts.links...)
	if err != nil {
		return nil, nil, err
	}

	for _, link := range chainLinks {
		err := chain.AddLink(ch, link)
		if err != nil {
			return nil, nil, err
		}
	}

	return ch, shutdown, nil
}

func runChain(ctx context.Context, opts runOptions, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cmds, err := newCommands(opts)
	if err != nil {
		return err
	}

	ch, shutdown, err := newChain(opts, errOut)
	if err != nil {
		return err
	}

	defer func() {
		err := shutdown(context.Background())
		if err != nil {
			logrus.WithError(err).Warn("unable to shutdown tracer provider")
		}
	}()

	results, err := chain.RunAll(ctx, ch, cmds, opts.concurrency)
	if err != nil {
		return errors.Wrap(err, "chain run failed")
	}

	reports := make([]*report, len(cmds))
	for i, cmd := range cmds {
		reports[i] = newReport(opts.configPaths[i], cmd, results[i])
	}

	enc := yaml.NewEncoder(out)
	defer enc.Close()

	err = enc.Encode(reports)
	if err != nil {
		return errors.Wrap(err, "unable to write report")
	}

	return nil
}

func newReport(path string, cmd *command.Command, res *chain.Result) *report {
	rep := &report{
		Config:    path,
		CommandID: cmd.ID,
		Kind:      cmd.Pipeline.Kind.String(),
		State:     res.State,
		BrokenAt:  res.BrokenAt,
		Skipped:   cmd.Skipped,
		Errors:    cmd.Errors(),
		Warnings:  cmd.Warnings(),
	}

	for _, stage := range cmd.Seeds {
		stageRep := stageReport{Name: stage.Name()}
		for _, build := range stage.Seeds() {
			stageRep.Jobs = append(stageRep.Jobs, build.Name())
		}

		rep.Stages = append(rep.Stages, stageRep)
	}

	return rep
}
