package domain

import (
	"fmt"
	"strings"

	"github.com/opencontainers/go-digest"
)

// ImagePin is a base image reference pinned by digest in a container recipe.
type ImagePin struct {
	// File and Line locate the FROM instruction.
	File string
	Line int

	// Repository is the image repository, including the registry host.
	Repository string

	// Tag is the human-readable tag, empty when only a digest is given.
	Tag string

	// Digest is the pinned content digest. Empty means the reference is
	// unpinned, which CheckImages treats as an error.
	Digest digest.Digest

	// Stage is the build stage name from "AS <stage>", if any.
	Stage string
}

// Ref renders the pin back into an image reference string.
func (p ImagePin) Ref() string {
	var b strings.Builder
	b.WriteString(p.Repository)
	if p.Tag != "" {
		b.WriteString(":" + p.Tag)
	}
	if p.Digest != "" {
		b.WriteString("@" + p.Digest.String())
	}
	return b.String()
}

// ImageChange records one digest bump in a container recipe.
type ImageChange struct {
	File       string
	Repository string
	Tag        string
	From       digest.Digest
	To         digest.Digest
}

// ImageDelta is the set of digest bumps from an image upgrade run.
type ImageDelta struct {
	Changes []ImageChange
}

// Empty reports whether no pin changed.
func (d *ImageDelta) Empty() bool {
	return len(d.Changes) == 0
}

// Summary renders the delta as plain text for dry-run output and the
// pull request body.
func (d *ImageDelta) Summary() string {
	if d.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("Base images:\n")
	for _, c := range d.Changes {
		ref := c.Repository
		if c.Tag != "" {
			ref += ":" + c.Tag
		}
		fmt.Fprintf(&b, "  %s %s -> %s\n", ref, shortDigest(c.From), shortDigest(c.To))
	}
	return b.String()
}

// shortDigest truncates a digest's hex to 12 characters for display.
func shortDigest(d digest.Digest) string {
	hex := d.Encoded()
	if len(hex) > 12 {
		hex = hex[:12]
	}
	return hex
}
