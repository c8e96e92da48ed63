package workflows

// workflowFile is the YAML shape of a workflow definition.
type workflowFile struct {
	Name string             `yaml:"name"`
	On   triggersFile       `yaml:"on"`
	Jobs map[string]jobFile `yaml:"jobs"`
}

type triggersFile struct {
	PullRequest *pullRequestFile `yaml:"pull_request"`
	Schedule    []scheduleFile   `yaml:"schedule"`
	Dispatch    *struct{}        `yaml:"workflow_dispatch"`
}

type pullRequestFile struct {
	Paths []string `yaml:"paths"`
}

type scheduleFile struct {
	Cron string `yaml:"cron"`
}

type jobFile struct {
	Needs []string          `yaml:"needs"`
	Env   map[string]string `yaml:"env"`
	Steps []stepFile        `yaml:"steps"`
}

type stepFile struct {
	Name string            `yaml:"name"`
	Uses string            `yaml:"uses"`
	With map[string]string `yaml:"with"`
	Run  string            `yaml:"run"`
	Env  map[string]string `yaml:"env"`
}
