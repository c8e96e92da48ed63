// Package oci maintains digest pins for base images in container recipes.
package oci

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/zerr"
)

// fromLine matches a FROM instruction:
//
//	FROM [--platform=...] repo[:tag][@sha256:...] [AS stage]
var fromLine = regexp.MustCompile(`(?i)^\s*FROM\s+(?:--platform=\S+\s+)?(\S+)(?:\s+AS\s+(\S+))?\s*$`)

// ParsePins extracts the base image pins from a container recipe.
// Stage-local references (FROM <stage>) are skipped.
func ParsePins(path string) ([]domain.ImagePin, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		readErr := zerr.Wrap(err, domain.ErrRecipeReadFailed.Error())
		return nil, zerr.With(readErr, "file", path)
	}

	var (
		pins   []domain.ImagePin
		stages = map[string]bool{}
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		match := fromLine.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}

		ref, stage := match[1], match[2]
		if stages[strings.ToLower(ref)] {
			continue
		}
		if stage != "" {
			stages[strings.ToLower(stage)] = true
		}

		pin, err := parseRef(ref)
		if err != nil {
			refErr := zerr.With(err, "file", path)
			return nil, zerr.With(refErr, "line", lineNo)
		}
		pin.File = path
		pin.Line = lineNo
		pin.Stage = stage

		pins = append(pins, pin)
	}

	return pins, nil
}

// parseRef splits an image reference into repository, tag and digest.
func parseRef(ref string) (domain.ImagePin, error) {
	rest := ref

	var dgst digest.Digest
	if base, raw, found := strings.Cut(rest, "@"); found {
		parsed, err := digest.Parse(raw)
		if err != nil {
			invalidErr := zerr.Wrap(err, domain.ErrInvalidImageRef.Error())
			return domain.ImagePin{}, zerr.With(invalidErr, "ref", ref)
		}
		dgst = parsed
		rest = base
	}

	repository, tag := rest, ""
	// A colon after the last slash separates the tag, not a port.
	if idx := strings.LastIndex(rest, ":"); idx > strings.LastIndex(rest, "/") {
		repository, tag = rest[:idx], rest[idx+1:]
	}

	if repository == "" {
		return domain.ImagePin{}, zerr.With(domain.ErrInvalidImageRef, "ref", ref)
	}

	return domain.ImagePin{
		Repository: repository,
		Tag:        tag,
		Digest:     dgst,
	}, nil
}

// RewritePin replaces the digest on the pin's FROM line, writing the file
// atomically.
func RewritePin(pin domain.ImagePin, to digest.Digest) error {
	data, err := os.ReadFile(filepath.Clean(pin.File))
	if err != nil {
		readErr := zerr.Wrap(err, domain.ErrRecipeReadFailed.Error())
		return zerr.With(readErr, "file", pin.File)
	}

	lines := strings.Split(string(data), "\n")
	if pin.Line < 1 || pin.Line > len(lines) {
		refErr := zerr.With(domain.ErrInvalidImageRef, "file", pin.File)
		return zerr.With(refErr, "line", pin.Line)
	}

	updated := pin
	updated.Digest = to
	lines[pin.Line-1] = strings.Replace(lines[pin.Line-1], pin.Ref(), updated.Ref(), 1)

	return atomicWriteFile(pin.File, []byte(strings.Join(lines, "\n")))
}

// atomicWriteFile writes data via a temp file rename in the same directory.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".recipe-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrRecipeWriteFailed.Error())
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, domain.ErrRecipeWriteFailed.Error())
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrRecipeWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrRecipeWriteFailed.Error())
	}

	return os.Rename(tmpName, path)
}
