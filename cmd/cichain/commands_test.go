package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const ciConfig = `
stages: [build, test, deploy]

compile:
  stage: build
  script: [go build ./...]

unit:
  script: [go test ./...]

publish:
  stage: deploy
  only:
    refs: [package_push]

chatops:
  stage: deploy
  only: [chat]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".gitlab-ci.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// execute runs the root command. The logger is global, so callers do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.ExecuteContext(t.Context())

	return out.String(), err
}

func decodeReports(t *testing.T, out string) []report {
	t.Helper()

	reports := []report{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))

	return reports
}

func TestRunCmd(t *testing.T) {
	path := writeConfig(t, ciConfig)

	tcs := map[string]struct {
		args     []string
		state    string
		brokenAt string
		stages   []stageReport
	}{
		"push": {
			args:  []string{"--kind", "push"},
			state: "completed",
			stages: []stageReport{
				{Name: "build", Jobs: []string{"compile"}},
				{Name: "test", Jobs: []string{"unit"}},
			},
		},
		"chat": {
			args:   []string{"--kind", "chat", "--chat-command", "chatops"},
			state:  "completed",
			stages: []stageReport{{Name: "deploy", Jobs: []string{"chatops"}}},
		},
		"package push": {
			args:   []string{"--kind", "package_push_event"},
			state:  "completed",
			stages: []stageReport{{Name: "deploy", Jobs: []string{"publish"}}},
		},
		"skip": {
			args:     []string{"--message", "wip [ci skip]"},
			state:    "broken",
			brokenAt: "skip",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, append([]string{"run", "--config", path}, tc.args...)...)
			require.NoError(t, err)

			reports := decodeReports(t, out)
			require.Len(t, reports, 1)
			assert.Equal(t, path, reports[0].Config)
			assert.Equal(t, tc.state, string(reports[0].State))
			assert.Equal(t, tc.brokenAt, reports[0].BrokenAt)
			assert.Equal(t, tc.stages, reports[0].Stages)
			assert.NotEmpty(t, reports[0].CommandID)
		})
	}
}

func TestRunCmdSeveralConfigs(t *testing.T) {
	valid := writeConfig(t, ciConfig)
	invalid := writeConfig(t, "unit: go test\n")

	out, err := execute(t, "run", "--config", valid, "--config", invalid, "--concurrency", "2", "--dot",
		filepath.Join(t.TempDir(), "chain.dot"))
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 2)
	assert.Equal(t, "completed", string(reports[0].State))
	assert.Equal(t, "broken", string(reports[1].State))
	assert.Equal(t, "parse", reports[1].BrokenAt)
	assert.Equal(t, []string{"jobs:unit config should be a hash"}, reports[1].Errors)
}

func TestRunCmdTrace(t *testing.T) {
	out, err := execute(t, "run", "--config", writeConfig(t, ciConfig), "--trace", "--log-format", "json")
	require.NoError(t, err)
	assert.Len(t, decodeReports(t, out), 1)
}

func TestRunCmdErrors(t *testing.T) {
	path := writeConfig(t, ciConfig)

	tcs := map[string][]string{
		"missing config": {"run", "--config", filepath.Join(t.TempDir(), "missing.yml")},
		"unknown kind":   {"run", "--config", path, "--kind", "carrier_pigeon"},
		"unknown link":   {"run", "--config", path, "--links", "skip,unknown"},
		"missing jobs":   {"run", "--config", path, "--links", "remove_unwanted_chat_jobs"},
		"log level":      {"run", "--config", path, "--log-level", "loud"},
		"log format":     {"run", "--config", path, "--log-format", "xml"},
	}

	for name, args := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			require.Error(t, err)
		})
	}
}

func TestLinksCmd(t *testing.T) {
	out, err := execute(t, "links")
	require.NoError(t, err)

	assert.Contains(t, out, "populate, remove_unwanted_chat_jobs")
	assert.Contains(t, out, "skip -> parse -> remove_unwanted_chat_jobs -> populate")
}
