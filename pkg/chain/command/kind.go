package command

import (
	"strings"

	"github.com/pkg/errors"
)

// PipelineKind is the source that triggered the pipeline.
type PipelineKind int

const (
	KindPush PipelineKind = iota
	KindWeb
	KindTrigger
	KindSchedule
	KindAPI
	KindMergeRequestEvent
	KindChat
	KindPackagePushEvent
)

var kindNames = map[PipelineKind]string{
	KindPush:              "push",
	KindWeb:               "web",
	KindTrigger:           "trigger",
	KindSchedule:          "schedule",
	KindAPI:               "api",
	KindMergeRequestEvent: "merge_request_event",
	KindChat:              "chat",
	KindPackagePushEvent:  "package_push_event",
}

// refsKeywords are the values of an only/except refs list selecting a pipeline kind.
var refsKeywords = map[PipelineKind]string{
	KindPush:              "pushes",
	KindWeb:               "web",
	KindTrigger:           "triggers",
	KindSchedule:          "schedules",
	KindAPI:               "api",
	KindMergeRequestEvent: "merge_requests",
	KindChat:              "chat",
	KindPackagePushEvent:  PackagePushRef,
}

// PackagePushRef is the only.refs marker of jobs allowed in package push pipelines.
const PackagePushRef = "package_push"

func (k PipelineKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// IsChat reports whether the pipeline was created from a chat command.
func (k PipelineKind) IsChat() bool {
	return k == KindChat
}

// IsPackagePushEvent reports whether the pipeline was created by a package push.
func (k PipelineKind) IsPackagePushEvent() bool {
	return k == KindPackagePushEvent
}

// RefsKeyword returns the only/except refs keyword matching the kind.
func (k PipelineKind) RefsKeyword() string {
	return refsKeywords[k]
}

// ParsePipelineKind returns the kind named name. Matching is case insensitive.
func ParsePipelineKind(name string) (PipelineKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownPipelineKind, "%q", name)
}
