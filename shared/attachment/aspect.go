package attachment

import (
	"math"

	"github.com/itchan-dev/mediameta/shared/domain"
)

// DefaultAspectRatio (roughly 16:9) is used for attachments without usable size metadata.
const DefaultAspectRatio = 1.7778

// AspectRatios returns one ratio per attachment, in input order, clamped into
// [minAspect, maxAspect]. Attachments without a usable size get
// DefaultAspectRatio, which is not clamped.
func AspectRatios(attachments []*domain.Attachment, minAspect, maxAspect float64) []float64 {
	ratios := make([]float64, len(attachments))
	for i, a := range attachments {
		ratios[i] = AspectRatio(a, minAspect, maxAspect)
	}
	return ratios
}

// AspectRatio is AspectRatios for a single attachment.
func AspectRatio(a *domain.Attachment, minAspect, maxAspect float64) float64 {
	raw, ok := RawAspectRatio(a)
	if !ok {
		return DefaultAspectRatio
	}
	return max(min(raw, maxAspect), minAspect)
}

// RawAspectRatio returns the unclamped ratio of the preferred size.
// ok is false when there is no size or the ratio can not be computed (zero height).
func RawAspectRatio(a *domain.Attachment) (ratio float64, ok bool) {
	size := SelectSize(a)
	if size == nil {
		return 0, false
	}
	if size.Aspect > 0 && !math.IsInf(size.Aspect, 1) {
		return size.Aspect, true
	}
	if size.Height == 0 {
		return 0, false
	}
	return float64(size.Width) / float64(size.Height), true
}

// SelectSize prefers the small rendition and falls back to the original.
func SelectSize(a *domain.Attachment) *domain.MediaSize {
	if a == nil || a.Meta == nil {
		return nil
	}
	if a.Meta.Small != nil {
		return a.Meta.Small
	}
	return a.Meta.Original
}

// FillAspect sets Aspect from width and height when it is missing.
func FillAspect(size *domain.MediaSize) {
	if size == nil || size.Aspect > 0 || size.Width <= 0 || size.Height <= 0 {
		return
	}
	size.Aspect = float64(size.Width) / float64(size.Height)
}
