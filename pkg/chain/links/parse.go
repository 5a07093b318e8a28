package links

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/askiada/go-cichain/pkg/chain/command"
)

const (
	ParseName = "parse"

	// DefaultJobStage is the stage of a job that does not declare one.
	DefaultJobStage = "test"
)

// DefaultStages are used when the configuration declares no stages.
var DefaultStages = []string{"build", "test", "deploy"}

// .pre and .post always wrap the declared stages.
const (
	preStage  = ".pre"
	postStage = ".post"
)

var reservedKeys = map[string]struct{}{
	"stages":        {},
	"variables":     {},
	"default":       {},
	"workflow":      {},
	"include":       {},
	"image":         {},
	"services":      {},
	"before_script": {},
	"after_script":  {},
	"cache":         {},
	"types":         {},
}

// Parse turns the CI configuration of the command into stages and job definitions.
// Configuration errors are recorded on the command and stop the chain.
type Parse struct{}

func NewParse() *Parse {
	return &Parse{}
}

func (*Parse) Name() string {
	return ParseName
}

func (*Parse) Perform(_ context.Context, cmd *command.Command) error {
	if len(strings.TrimSpace(string(cmd.Content))) == 0 {
		cmd.Error("Missing CI config file")

		return nil
	}

	var root map[string]yaml.Node
	err := yaml.Unmarshal(cmd.Content, &root)
	if err != nil {
		cmd.Error("Invalid configuration format: " + err.Error())

		return nil
	}

	stages, ok := parseStages(cmd, root)
	if !ok {
		return nil
	}

	jobs := make(command.Jobs)
	for name, node := range root {
		if _, reserved := reservedKeys[name]; reserved || strings.HasPrefix(name, ".") {
			continue
		}

		if node.Kind != yaml.MappingNode {
			cmd.Error("jobs:" + name + " config should be a hash")

			continue
		}

		job := &command.Job{}
		err := node.Decode(job)
		if err != nil {
			cmd.Error("jobs:" + name + " " + err.Error())

			continue
		}

		job.Name = name
		if job.Stage == "" {
			job.Stage = DefaultJobStage
		}

		jobs[name] = job
	}

	if cmd.HasErrors() {
		return nil
	}

	if len(jobs) == 0 {
		cmd.Error("jobs config should contain at least one visible job")

		return nil
	}

	cmd.Stages = stages
	cmd.Jobs = jobs

	return nil
}

func (*Parse) Break(cmd *command.Command) bool {
	return cmd.HasErrors()
}

func parseStages(cmd *command.Command, root map[string]yaml.Node) ([]string, bool) {
	declared := DefaultStages

	node, ok := root["stages"]
	if !ok {
		node, ok = root["types"]
	}

	if ok {
		declared = nil

		err := node.Decode(&declared)
		if err != nil {
			cmd.Error("stages config should be an array of strings")

			return nil, false
		}
	}

	return withEdgeStages(declared), true
}

func withEdgeStages(declared []string) []string {
	stages := make([]string, 0, len(declared)+2)
	stages = append(stages, preStage)
	for _, stage := range declared {
		if stage == preStage || stage == postStage {
			continue
		}

		stages = append(stages, stage)
	}

	return append(stages, postStage)
}
