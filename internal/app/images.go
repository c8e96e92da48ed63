package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/reinhard/internal/adapters/oci"
	"go.trai.ch/reinhard/internal/core/domain"
	"go.trai.ch/zerr"
)

// CheckImages verifies that every base image in the configured container
// recipes is pinned by digest. Pins whose tag has moved are reported as
// warnings; unpinned references fail the check.
func (a *App) CheckImages(ctx context.Context) error {
	var findings []error

	for _, file := range a.settings.Images.Files {
		pins, err := oci.ParsePins(file)
		if err != nil {
			return err
		}

		for _, pin := range pins {
			if pin.Digest == "" {
				unpinned := zerr.With(domain.ErrImageRefNotPinned, "ref", pin.Ref())
				unpinned = zerr.With(unpinned, "file", pin.File)
				findings = append(findings, zerr.With(unpinned, "line", pin.Line))
				continue
			}
			if pin.Tag == "" {
				continue
			}

			current, err := a.images.ResolveDigest(ctx, pin.Repository, pin.Tag)
			if err != nil {
				return err
			}
			if current != pin.Digest {
				a.logger.Warn(fmt.Sprintf("%s:%s has moved, run 'reinhard image bump'", pin.Repository, pin.Tag))
			}
		}
	}

	if len(findings) > 0 {
		return errors.Join(findings...)
	}

	a.logger.Info("all base images are pinned by digest")
	return nil
}

// BumpImages re-resolves every tagged base image pin and rewrites pins
// whose tag moved to a new digest. Digest-only pins are left alone.
func (a *App) BumpImages(ctx context.Context, dryRun bool) (*domain.ImageDelta, error) {
	delta := &domain.ImageDelta{}

	for _, file := range a.settings.Images.Files {
		pins, err := oci.ParsePins(file)
		if err != nil {
			return nil, err
		}

		for _, pin := range pins {
			if pin.Tag == "" {
				continue
			}

			current, err := a.images.ResolveDigest(ctx, pin.Repository, pin.Tag)
			if err != nil {
				return nil, err
			}
			if current == pin.Digest {
				continue
			}

			if !dryRun {
				if err := oci.RewritePin(pin, current); err != nil {
					return nil, err
				}
			}

			delta.Changes = append(delta.Changes, domain.ImageChange{
				File:       pin.File,
				Repository: pin.Repository,
				Tag:        pin.Tag,
				From:       pin.Digest,
				To:         current,
			})
		}
	}

	return delta, nil
}
