package workflow

import (
	"maps"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
)

// Builtin action names.
const (
	ActionVerifyLocks   = "locks/verify"
	ActionUpgradeLocks  = "locks/upgrade"
	ActionOutdatedLocks = "locks/outdated"
	ActionVerifyIndexes = "index/verify"
	ActionCheckImages   = "image/check"
	ActionBumpImages    = "image/bump"
)

// Builtin workflow names.
const (
	VerifyLocksWorkflow  = "verify-locks"
	UpgradeLocksWorkflow = "upgrade-locks"
)

// upgradeCron is the monthly upgrade schedule: 12:00 UTC on the first.
const upgradeCron = "0 12 1 * *"

// mustCron parses a cron expression known to be valid at compile time.
func mustCron(raw string) domain.CronSpec {
	spec, err := domain.ParseCron(raw)
	if err != nil {
		panic(err)
	}
	return spec
}

// Builtins returns the built-in workflow definitions.
//
// verify-locks runs on pull requests touching lock files and checks the
// lock set. upgrade-locks runs monthly (or on dispatch), upgrades every
// pin and base image, and publishes the result as a pull request.
func Builtins(settings *domain.Settings) map[string]domain.Workflow {
	lockGlob := settings.Locks.Dir + "/*.txt"

	return map[string]domain.Workflow{
		VerifyLocksWorkflow: {
			Name: VerifyLocksWorkflow,
			On: domain.Triggers{
				PullRequest: &domain.PullRequestTrigger{Paths: []string{lockGlob}},
				Dispatch:    true,
			},
			Jobs: map[string]domain.Job{
				"verify": {
					Steps: []domain.Step{
						{Name: "Verify lock files", Uses: ActionVerifyLocks},
					},
				},
			},
		},
		UpgradeLocksWorkflow: {
			Name: UpgradeLocksWorkflow,
			On: domain.Triggers{
				Schedules: []domain.Schedule{{Cron: mustCron(upgradeCron)}},
				Dispatch:  true,
			},
			Jobs: map[string]domain.Job{
				"upgrade": {
					Steps: []domain.Step{
						{Name: "Bump base images", Uses: ActionBumpImages},
						{
							Name: "Upgrade locked dependencies",
							Uses: ActionUpgradeLocks,
							With: map[string]string{"publish": "true"},
						},
					},
				},
			},
		},
	}
}

// Definitions merges the built-in workflows with the project's own
// definitions. A project workflow with a builtin's name replaces it.
func Definitions(loader ports.WorkflowLoader, settings *domain.Settings) (map[string]domain.Workflow, error) {
	loaded, err := loader.Load(settings.Workflows.Dir)
	if err != nil {
		return nil, err
	}

	definitions := Builtins(settings)
	maps.Copy(definitions, loaded)
	return definitions, nil
}
