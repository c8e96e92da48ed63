package domain_test

import (
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/reinhard/internal/core/domain"
)

func TestLockDelta_Summary(t *testing.T) {
	delta := domain.LockDelta{Files: []domain.FileDelta{
		{
			Path: "dev-requirements/nox.txt",
			Changed: []domain.PinChange{
				{Name: "argcomplete", From: "3.2.3", To: "3.3.0", Origin: "nox"},
				{Name: "nox", From: "2024.3.2", To: "2024.10.9"},
			},
			Added: []domain.PinChange{
				{Name: "colorlog", To: "6.8.2", Origin: "nox"},
				{Name: "packaging", To: "24.0"},
			},
			Removed: []domain.PinChange{
				{Name: "six", From: "1.16.0"},
			},
		},
		{Path: "dev-requirements/lint.txt"},
	}}

	want := "dev-requirements/nox.txt:\n" +
		"  argcomplete 3.2.3 -> 3.3.0\n" +
		"  nox 2024.3.2 -> 2024.10.9\n" +
		"  + colorlog 6.8.2 (via nox)\n" +
		"  + packaging 24.0\n" +
		"  - six 1.16.0\n"
	assert.Equal(t, want, delta.Summary())
	assert.False(t, delta.Empty())
}

func TestLockDelta_SummaryEmpty(t *testing.T) {
	delta := domain.LockDelta{Files: []domain.FileDelta{
		{Path: "dev-requirements/nox.txt"},
	}}

	assert.Equal(t, "No changes.\n", delta.Summary())
	assert.True(t, delta.Empty())
}

func TestImageDelta_Summary(t *testing.T) {
	from := digest.Digest("sha256:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	to := digest.Digest("sha256:bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")

	delta := domain.ImageDelta{Changes: []domain.ImageChange{
		{File: "Dockerfile", Repository: "golang", Tag: "1.25-alpine", From: from, To: to},
		{File: "Dockerfile", Repository: "alpine", From: from, To: to},
	}}

	// Digests are shortened to 12 hex characters.
	want := "Base images:\n" +
		"  golang:1.25-alpine aaaaaaaaaaaa -> bbbbbbbbbbbb\n" +
		"  alpine aaaaaaaaaaaa -> bbbbbbbbbbbb\n"
	assert.Equal(t, want, delta.Summary())
}

func TestImageDelta_SummaryEmpty(t *testing.T) {
	delta := domain.ImageDelta{}
	assert.True(t, delta.Empty())
	assert.Empty(t, delta.Summary())
}
