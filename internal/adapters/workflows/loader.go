// Package workflows loads workflow definitions from YAML files.
package workflows

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.WorkflowLoader = (*Loader)(nil)

// Loader implements ports.WorkflowLoader over a directory of YAML files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new workflow Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load parses every *.yaml and *.yml file under dir into a workflow,
// keyed by workflow name. A missing directory yields an empty map.
func (l *Loader) Load(dir string) (map[string]domain.Workflow, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]domain.Workflow{}, nil
		}
		readErr := zerr.Wrap(err, domain.ErrWorkflowParseFailed.Error())
		return nil, zerr.With(readErr, "dir", dir)
	}

	result := make(map[string]domain.Workflow)
	for _, entry := range entries {
		if entry.IsDir() || !isWorkflowFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		workflow, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}

		result[workflow.Name] = workflow
	}

	l.logger.Debug(fmt.Sprintf("loaded %d workflow definition(s) from %s", len(result), dir))

	return result, nil
}

// isWorkflowFile reports whether a file name looks like a workflow
// definition.
func isWorkflowFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// loadFile parses and validates a single workflow definition.
func (l *Loader) loadFile(path string) (domain.Workflow, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		readErr := zerr.Wrap(err, domain.ErrWorkflowParseFailed.Error())
		return domain.Workflow{}, zerr.With(readErr, "file", path)
	}

	var file workflowFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		parseErr := zerr.Wrap(err, domain.ErrWorkflowParseFailed.Error())
		return domain.Workflow{}, zerr.With(parseErr, "file", path)
	}

	workflow, err := toDomain(file, path)
	if err != nil {
		return domain.Workflow{}, zerr.With(err, "file", path)
	}

	if err := workflow.Validate(); err != nil {
		return domain.Workflow{}, zerr.With(err, "file", path)
	}

	return workflow, nil
}

// toDomain converts the YAML shape into the domain workflow. An absent
// name falls back to the file's base name.
func toDomain(file workflowFile, path string) (domain.Workflow, error) {
	name := file.Name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
	}

	workflow := domain.Workflow{
		Name: name,
		Jobs: make(map[string]domain.Job, len(file.Jobs)),
	}

	if file.On.PullRequest != nil {
		workflow.On.PullRequest = &domain.PullRequestTrigger{
			Paths: file.On.PullRequest.Paths,
		}
	}
	for _, schedule := range file.On.Schedule {
		spec, err := domain.ParseCron(schedule.Cron)
		if err != nil {
			return domain.Workflow{}, zerr.With(err, "workflow", name)
		}
		workflow.On.Schedules = append(workflow.On.Schedules, domain.Schedule{Cron: spec})
	}
	workflow.On.Dispatch = file.On.Dispatch != nil

	for jobName, job := range file.Jobs {
		steps := make([]domain.Step, 0, len(job.Steps))
		for _, step := range job.Steps {
			steps = append(steps, domain.Step{
				Name: step.Name,
				Uses: step.Uses,
				With: step.With,
				Run:  splitScript(step.Run),
				Env:  step.Env,
			})
		}
		workflow.Jobs[jobName] = domain.Job{
			Needs: job.Needs,
			Env:   job.Env,
			Steps: steps,
		}
	}

	return workflow, nil
}

// splitScript turns a run block into its non-empty lines.
func splitScript(script string) []string {
	var lines []string
	for line := range strings.SplitSeq(script, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
