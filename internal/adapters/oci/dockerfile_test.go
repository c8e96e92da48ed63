package oci_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/adapters/oci"
	"go.trai.ch/reinhard/internal/core/domain"
)

const (
	digestA = "sha256:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	digestB = "sha256:bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParsePins(t *testing.T) {
	path := writeRecipe(t,
		"FROM python:3.12-slim@"+digestA+" AS builder\n"+
			"RUN pip install .\n"+
			"FROM builder AS test\n"+
			"from alpine:3.19\n"+
			"FROM --platform=linux/amd64 ghcr.io/acme/base@"+digestB+"\n")

	pins, err := oci.ParsePins(path)
	require.NoError(t, err)
	require.Len(t, pins, 3)

	assert.Equal(t, "python", pins[0].Repository)
	assert.Equal(t, "3.12-slim", pins[0].Tag)
	assert.Equal(t, digest.Digest(digestA), pins[0].Digest)
	assert.Equal(t, "builder", pins[0].Stage)
	assert.Equal(t, 1, pins[0].Line)

	// Lowercase FROM without a digest still parses; it just fails CheckImages.
	assert.Equal(t, "alpine", pins[1].Repository)
	assert.Equal(t, "3.19", pins[1].Tag)
	assert.Empty(t, pins[1].Digest)

	// --platform is skipped, registry host and port handling keeps the repo intact.
	assert.Equal(t, "ghcr.io/acme/base", pins[2].Repository)
	assert.Empty(t, pins[2].Tag)
	assert.Equal(t, digest.Digest(digestB), pins[2].Digest)
}

func TestParsePins_StageReferenceSkipped(t *testing.T) {
	path := writeRecipe(t,
		"FROM golang:1.25@"+digestA+" AS Builder\n"+
			"FROM builder\n")

	pins, err := oci.ParsePins(path)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, "golang", pins[0].Repository)
}

func TestParsePins_RegistryPort(t *testing.T) {
	path := writeRecipe(t, "FROM localhost:5000/acme/base:v1@" + digestA + "\n")

	pins, err := oci.ParsePins(path)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, "localhost:5000/acme/base", pins[0].Repository)
	assert.Equal(t, "v1", pins[0].Tag)
}

func TestParsePins_InvalidDigest(t *testing.T) {
	path := writeRecipe(t, "FROM python:3.12@sha256:notahexdigest\n")

	_, err := oci.ParsePins(path)
	require.ErrorIs(t, err, domain.ErrInvalidImageRef)
}

func TestParsePins_MissingFile(t *testing.T) {
	_, err := oci.ParsePins(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, domain.ErrRecipeReadFailed)
}

func TestRewritePin(t *testing.T) {
	content := "FROM python:3.12-slim@" + digestA + " AS builder\nRUN true\n"
	path := writeRecipe(t, content)

	pins, err := oci.ParsePins(path)
	require.NoError(t, err)
	require.Len(t, pins, 1)

	require.NoError(t, oci.RewritePin(pins[0], digest.Digest(digestB)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FROM python:3.12-slim@"+digestB+" AS builder\nRUN true\n", string(data))

	// The rewritten file parses back to the new digest.
	pins, err = oci.ParsePins(path)
	require.NoError(t, err)
	assert.Equal(t, digest.Digest(digestB), pins[0].Digest)
}

func TestImagePin_Ref(t *testing.T) {
	pin := domain.ImagePin{Repository: "python", Tag: "3.12", Digest: digest.Digest(digestA)}
	assert.Equal(t, "python:3.12@"+digestA, pin.Ref())

	pin = domain.ImagePin{Repository: "ghcr.io/acme/base"}
	assert.Equal(t, "ghcr.io/acme/base", pin.Ref())
}
