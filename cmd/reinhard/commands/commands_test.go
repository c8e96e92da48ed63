package commands_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/cmd/reinhard/commands"
	"go.trai.ch/reinhard/internal/app"
	"go.trai.ch/reinhard/internal/core/domain"
)

// stubApp records the operations the CLI invoked and returns canned results.
type stubApp struct {
	verifyOpts   *app.VerifyOptions
	verifyErr    error
	upgradeOpts  *app.UpgradeOptions
	upgradeDelta domain.LockDelta
	outdated     bool
	generateOpts *app.GenerateOptions
	searchName   string
	searchQuery  string
	indexVerify  bool
	watchOpts    *app.GenerateOptions
	checkImages  bool
	bumpDryRun   *bool
	bumpDelta    domain.ImageDelta
	eventKind    string
	checkEvent   *domain.Event
	runOpts      *app.CIRunOptions
	next         bool
	debug        bool
}

func (s *stubApp) VerifyLocks(_ context.Context, opts app.VerifyOptions) error {
	s.verifyOpts = &opts
	return s.verifyErr
}

func (s *stubApp) UpgradeLocks(_ context.Context, opts app.UpgradeOptions) (*domain.LockDelta, error) {
	s.upgradeOpts = &opts
	return &s.upgradeDelta, nil
}

func (s *stubApp) OutdatedLocks(_ context.Context, out io.Writer) error {
	s.outdated = true
	_, _ = fmt.Fprintln(out, "All pins are up to date.")
	return nil
}

func (s *stubApp) GenerateIndexes(_ context.Context, opts app.GenerateOptions) error {
	s.generateOpts = &opts
	return nil
}

func (s *stubApp) SearchIndex(_ context.Context, name, query string, out io.Writer) error {
	s.searchName, s.searchQuery = name, query
	_, _ = fmt.Fprintln(out, "tanjun.abc.Context (3 uses)")
	return nil
}

func (s *stubApp) VerifyIndexes(context.Context) error {
	s.indexVerify = true
	return nil
}

func (s *stubApp) WatchIndexes(_ context.Context, opts app.GenerateOptions) error {
	s.watchOpts = &opts
	return nil
}

func (s *stubApp) CheckImages(context.Context) error {
	s.checkImages = true
	return nil
}

func (s *stubApp) BumpImages(_ context.Context, dryRun bool) (*domain.ImageDelta, error) {
	s.bumpDryRun = &dryRun
	return &s.bumpDelta, nil
}

func (s *stubApp) EventForKind(_ context.Context, kind string) (domain.Event, error) {
	s.eventKind = kind
	return domain.Event{Kind: domain.EventKind(kind)}, nil
}

func (s *stubApp) CICheck(_ context.Context, event domain.Event, out io.Writer) error {
	s.checkEvent = &event
	_, _ = fmt.Fprintln(out, "verify-locks")
	return nil
}

func (s *stubApp) CIRun(_ context.Context, opts app.CIRunOptions) error {
	s.runOpts = &opts
	return nil
}

func (s *stubApp) CINext(_ context.Context, out io.Writer) error {
	s.next = true
	_, _ = fmt.Fprintln(out, "no scheduled workflows")
	return nil
}

func (s *stubApp) SetDebug(enable bool) {
	s.debug = enable
}

func execute(t *testing.T, stub *stubApp, args ...string) (string, error) {
	t.Helper()

	cli := commands.New(stub)
	var out, errOut bytes.Buffer
	cli.SetOutput(&out, &errOut)
	cli.SetArgs(args)

	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestLocksVerify(t *testing.T) {
	stub := &stubApp{}
	_, err := execute(t, stub, "locks", "verify", "--offline")
	require.NoError(t, err)

	require.NotNil(t, stub.verifyOpts)
	assert.True(t, stub.verifyOpts.Offline)
}

func TestLocksVerify_ErrorPropagates(t *testing.T) {
	stub := &stubApp{verifyErr: domain.ErrVerificationFailed}
	_, err := execute(t, stub, "locks", "verify")
	require.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestLocksUpgrade(t *testing.T) {
	stub := &stubApp{upgradeDelta: domain.LockDelta{Files: []domain.FileDelta{{
		Path:    "dev-requirements/nox.txt",
		Changed: []domain.PinChange{{Name: "nox", From: "2024.3.2", To: "2024.10.9"}},
	}}}}

	out, err := execute(t, stub, "locks", "upgrade", "--dry-run", "--publish")
	require.NoError(t, err)

	require.NotNil(t, stub.upgradeOpts)
	assert.True(t, stub.upgradeOpts.DryRun)
	assert.True(t, stub.upgradeOpts.Publish)
	assert.Contains(t, out, "nox 2024.3.2 -> 2024.10.9")
}

func TestLocksOutdated(t *testing.T) {
	stub := &stubApp{}
	out, err := execute(t, stub, "locks", "outdated")
	require.NoError(t, err)
	assert.True(t, stub.outdated)
	assert.Contains(t, out, "All pins are up to date.")
}

func TestIndexGenerate(t *testing.T) {
	stub := &stubApp{}
	_, err := execute(t, stub, "index", "generate", "default", "--out-dir", "/tmp/indexes")
	require.NoError(t, err)

	require.NotNil(t, stub.generateOpts)
	assert.Equal(t, "default", stub.generateOpts.Profile)
	assert.Equal(t, "/tmp/indexes", stub.generateOpts.OutDir)
}

func TestIndexSearch(t *testing.T) {
	stub := &stubApp{}
	out, err := execute(t, stub, "index", "search", "tanjun", "Context")
	require.NoError(t, err)

	assert.Equal(t, "tanjun", stub.searchName)
	assert.Equal(t, "Context", stub.searchQuery)
	assert.Contains(t, out, "tanjun.abc.Context")
}

func TestIndexVerify(t *testing.T) {
	stub := &stubApp{}
	_, err := execute(t, stub, "index", "verify")
	require.NoError(t, err)
	assert.True(t, stub.indexVerify)
}

func TestImageCheck(t *testing.T) {
	stub := &stubApp{}
	_, err := execute(t, stub, "image", "check")
	require.NoError(t, err)
	assert.True(t, stub.checkImages)
}

func TestImageBump_NoChanges(t *testing.T) {
	stub := &stubApp{}
	out, err := execute(t, stub, "image", "bump", "-n")
	require.NoError(t, err)

	require.NotNil(t, stub.bumpDryRun)
	assert.True(t, *stub.bumpDryRun)
	assert.Contains(t, out, "base images are current")
}

func TestCICheck(t *testing.T) {
	stub := &stubApp{}
	out, err := execute(t, stub, "ci", "check", "--event", "workflow_dispatch")
	require.NoError(t, err)

	assert.Equal(t, "workflow_dispatch", stub.eventKind)
	require.NotNil(t, stub.checkEvent)
	assert.Equal(t, domain.EventDispatch, stub.checkEvent.Kind)
	assert.Contains(t, out, "verify-locks")
}

func TestCIRun_NamedWorkflow(t *testing.T) {
	stub := &stubApp{}
	_, err := execute(t, stub, "ci", "run", "upgrade-locks")
	require.NoError(t, err)

	// The event kind defaults to a manual dispatch.
	assert.Equal(t, "workflow_dispatch", stub.eventKind)
	require.NotNil(t, stub.runOpts)
	assert.Equal(t, "upgrade-locks", stub.runOpts.Workflow)
}

func TestCINext(t *testing.T) {
	stub := &stubApp{}
	out, err := execute(t, stub, "ci", "next")
	require.NoError(t, err)
	assert.True(t, stub.next)
	assert.Contains(t, out, "no scheduled workflows")
}

func TestVersion(t *testing.T) {
	stub := &stubApp{}
	out, err := execute(t, stub, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reinhard version")
}

func TestRoot_Help(t *testing.T) {
	stub := &stubApp{}
	out, err := execute(t, stub, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "locks")
	assert.Contains(t, out, "index")
	assert.Contains(t, out, "ci")
}

func TestRoot_DebugFlag(t *testing.T) {
	stub := &stubApp{}
	_, err := execute(t, stub, "--debug", "ci", "next")
	require.NoError(t, err)
	assert.True(t, stub.debug)
}
