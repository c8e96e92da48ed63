package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/app"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/reinhard/internal/core/ports"
	"go.trai.ch/reinhard/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fixture bundles an App wired entirely to mocks.
type fixture struct {
	app      *app.App
	settings *domain.Settings

	locks     *mocks.MockLockStore
	resolver  *mocks.MockReleaseResolver
	vcs       *mocks.MockVcs
	forge     *mocks.MockForge
	images    *mocks.MockImageResolver
	workflows *mocks.MockWorkflowLoader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	settings := domain.DefaultSettings()

	f := &fixture{
		settings:  &settings,
		locks:     mocks.NewMockLockStore(ctrl),
		resolver:  mocks.NewMockReleaseResolver(ctrl),
		vcs:       mocks.NewMockVcs(ctrl),
		forge:     mocks.NewMockForge(ctrl),
		images:    mocks.NewMockImageResolver(ctrl),
		workflows: mocks.NewMockWorkflowLoader(ctrl),
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	forgeFactory := func(context.Context) (ports.Forge, error) {
		return f.forge, nil
	}

	f.app = app.New(
		logger,
		f.settings,
		f.locks,
		f.resolver,
		f.vcs,
		forgeFactory,
		f.images,
		mocks.NewMockIndexGenerator(ctrl),
		mocks.NewMockIndexStore(ctrl),
		f.workflows,
		mocks.NewMockExecutor(ctrl),
		nil,
	)
	return f
}

func version(raw string) domain.Version {
	return domain.ParseVersion(raw)
}

func spec(t *testing.T, raw string) domain.VersionSpec {
	t.Helper()
	s, err := domain.ParseVersionSpec(raw)
	require.NoError(t, err)
	return s
}

// noxLockSet is the lock set fixture used across the lock operation tests:
// one lock file with a direct requirement and a transitive pin.
func noxLockSet(t *testing.T) domain.LockSet {
	t.Helper()
	return domain.LockSet{Files: []domain.LockFile{{
		Path: "dev-requirements/nox.txt",
		Pins: []domain.Pin{
			{Name: "argcomplete", Version: version("3.2.3"), Origin: "nox"},
			{Name: "nox", Version: version("2024.3.2")},
		},
		Requirements: []domain.Requirement{
			{Name: "nox", Spec: spec(t, ">=2024")},
		},
	}}}
}
