// Package config provides the configuration loader for reinhard.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers reinhard.yaml by walking up from cwd and parses it over
// the defaults. A missing config file is not an error: all defaults apply
// and Root is cwd. Environment overrides are applied last.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	settings.Root = cwd

	if configPath, found := findConfiguration(cwd); found {
		if err := l.applyFile(&settings, configPath); err != nil {
			return nil, err
		}
		settings.Root = filepath.Dir(configPath)
	}

	applyEnvironment(&settings)

	return &settings, nil
}

// findConfiguration walks up from cwd looking for the config file.
func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

// applyFile parses the config file and overlays the non-zero fields onto
// the settings.
func (l *Loader) applyFile(settings *domain.Settings, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from the working directory
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	var file Reinhardfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}

	applyString(&settings.Locks.Dir, file.Locks.Dir)
	applyString(&settings.Locks.IndexURL, file.Locks.IndexURL)
	if file.Locks.Offline {
		settings.Locks.Offline = true
	}

	applyString(&settings.Publish.Branch, file.Publish.Branch)
	applyString(&settings.Publish.Title, file.Publish.Title)
	applyString(&settings.Publish.CommitMessage, file.Publish.CommitMessage)
	if file.Publish.Author != "" {
		name, email, err := parseIdentity(file.Publish.Author)
		if err != nil {
			return zerr.With(err, "file", path)
		}
		settings.Publish.AuthorName = name
		settings.Publish.AuthorEmail = email
	}
	if len(file.Publish.TokenEnv) > 0 {
		settings.Publish.TokenEnv = file.Publish.TokenEnv
	}

	for name, entries := range file.Profiles {
		profile := make([]domain.ProfileEntry, 0, len(entries))
		for _, entry := range entries {
			profile = append(profile, domain.ProfileEntry{
				Name:            entry.Name,
				Package:         entry.Package,
				Index:           entry.Index,
				Scan:            entry.Scan,
				TrackThirdParty: entry.TrackThirdParty,
				TrackBuiltins:   entry.TrackBuiltins,
			})
		}
		settings.Profiles[name] = profile
	}

	applyString(&settings.Indexes.Dir, file.Indexes.Dir)
	if len(file.Images.Files) > 0 {
		settings.Images.Files = file.Images.Files
	}
	applyString(&settings.Workflows.Dir, file.Workflows.Dir)

	return nil
}

// applyEnvironment applies environment variable overrides. Environment
// takes precedence over the config file; flags are applied above this
// layer by the CLI.
func applyEnvironment(settings *domain.Settings) {
	if dir := os.Getenv(domain.EnvIndexDir); dir != "" {
		settings.Indexes.Dir = dir
	}
}

// parseIdentity splits "Name <email>" into its parts.
func parseIdentity(author string) (name, email string, err error) {
	open := strings.Index(author, "<")
	end := strings.LastIndex(author, ">")
	if open < 0 || end < open {
		return "", "", zerr.With(domain.ErrConfigParseFailed, "author", author)
	}

	name = strings.TrimSpace(author[:open])
	email = strings.TrimSpace(author[open+1 : end])
	if name == "" || email == "" {
		return "", "", zerr.With(domain.ErrConfigParseFailed, "author", author)
	}
	return name, email, nil
}

func applyString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
