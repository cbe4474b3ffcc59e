package pack

import "fmt"

// Validate runs the precondition checks spec §6 assigns to the caller:
// positive dimensions, unique box IDs, each box fitting the usable region
// in at least one orientation its rotation flags permit, a positive usable footprint,
// and a corner radius that fits. Optimize itself does not call Validate —
// it assumes a well-formed request, per §7 — so hosts should call this
// before Optimize and reject the request (e.g. HTTP 400) on error.
func Validate(container Container, boxes []Box, settings Settings) error {
	if container.Length <= 0 || container.Width <= 0 || container.Height <= 0 {
		return fmt.Errorf("%w: container dimensions", ErrNonPositiveDimension)
	}
	if container.CornerRadius > min(container.Length, container.Width)/2 {
		return fmt.Errorf("%w: corner radius exceeds min(length, width)/2", ErrInvalidContainer)
	}

	totalMargin := container.Margin + settings.ExtraMargin
	usableLength := container.Length - 2*totalMargin
	usableWidth := container.Width - 2*totalMargin
	if usableLength <= 0 || usableWidth <= 0 {
		return fmt.Errorf("%w: margins leave no usable footprint", ErrInvalidContainer)
	}

	seen := make(map[string]struct{}, len(boxes))
	for _, b := range boxes {
		if b.Length <= 0 || b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%w: box %q", ErrNonPositiveDimension, b.ID)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateBoxID, b.ID)
		}
		seen[b.ID] = struct{}{}

		if !fitsSomeOrientation(b, usableLength, usableWidth, container.Height) {
			return fmt.Errorf("pack: box %q does not fit the usable region in any allowed orientation", b.ID)
		}
	}

	return nil
}

// fitsSomeOrientation reports whether box has at least one orientation
// (among those its rotation flags permit) whose placed dimensions fit
// within the given usable extents.
func fitsSomeOrientation(b Box, usableLength, usableWidth, usableHeight float64) bool {
	for _, dims := range orientationsFor(b) {
		if dims.length <= usableLength && dims.width <= usableWidth && dims.height <= usableHeight {
			return true
		}
	}
	return false
}
