// Package attachment formats media attachments for display: accessibility
// descriptions and thumbnail aspect ratios.
package attachment

import (
	"fmt"
	"math"

	"github.com/itchan-dev/mediameta/shared/domain"
)

// FormatDescription returns the accessibility text for an attachment.
// A positive duration is prepended as "H:MM:SS ". When the attachment has no
// description the placeholder is used instead.
func FormatDescription(a *domain.Attachment, placeholder string) string {
	var prefix string
	if d, ok := duration(a); ok {
		prefix = FormatDuration(d) + " "
	}

	if desc := a.DescriptionText(); desc != "" {
		return prefix + desc
	}
	return prefix + placeholder
}

// FormatDuration renders seconds as H:MM:SS. Seconds are rounded while
// minutes and hours are truncated, so 59.6 renders as 0:00:00.
// Hours are unbounded and computed in float64, so huge durations never wrap.
func FormatDuration(totalSeconds float64) string {
	seconds := math.Mod(math.Round(totalSeconds), 60)
	minutes := math.Floor(math.Mod(totalSeconds, 3600) / 60)
	hours := math.Floor(totalSeconds / 3600)
	return fmt.Sprintf("%.0f:%02.0f:%02.0f", hours, minutes, seconds)
}

func duration(a *domain.Attachment) (float64, bool) {
	if a == nil || a.Meta == nil || a.Meta.Duration == nil {
		return 0, false
	}
	d := *a.Meta.Duration
	if !(d > 0) || math.IsInf(d, 1) {
		return 0, false
	}
	return d, true
}
