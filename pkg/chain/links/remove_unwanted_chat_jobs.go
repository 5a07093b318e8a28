package links

import (
	"context"

	"github.com/askiada/go-cichain/pkg/chain"
	"github.com/askiada/go-cichain/pkg/chain/command"
)

const RemoveUnwantedChatJobsName = "remove_unwanted_chat_jobs"

// RemoveUnwantedChatJobs keeps the jobs a chat or package push pipeline is allowed to run.
//
// A chat pipeline keeps the job named after the chat command. A package push pipeline keeps the
// jobs whose only refs include package_push. Other pipelines are left untouched.
type RemoveUnwantedChatJobs struct {
	chain.BaseLink
}

func NewRemoveUnwantedChatJobs() *RemoveUnwantedChatJobs {
	return &RemoveUnwantedChatJobs{BaseLink: chain.BaseLink{LinkName: RemoveUnwantedChatJobsName}}
}

func (l *RemoveUnwantedChatJobs) Perform(_ context.Context, cmd *command.Command) error {
	jobs, err := cmd.RequireJobs()
	if err != nil {
		return err
	}

	switch kind := cmd.Pipeline.Kind; {
	case kind.IsChat():
		target := ""
		if cmd.ChatData != nil {
			target = cmd.ChatData.Command
		}

		jobs.Retain(func(name string, _ *command.Job) bool {
			return name == target
		})
	case kind.IsPackagePushEvent():
		jobs.Retain(func(_ string, job *command.Job) bool {
			return job != nil && job.Only.Contains(command.PackagePushRef)
		})
	}

	return nil
}
