// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strconv"
	"time"
)

// FormatRelative describes t relative to now the way the history list shows
// it: "Just now", "5m ago", "3h ago", "2d ago", then a short date. The year
// is added only when it differs from now's.
func FormatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	minutes := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))

	switch {
	case diff < time.Minute:
		return "Just now"
	case minutes < 60:
		return strconv.FormatInt(minutes, 10) + "m ago"
	case hours < 24:
		return strconv.FormatInt(hours, 10) + "h ago"
	case days < 7:
		return strconv.FormatInt(days, 10) + "d ago"
	}

	local := t.In(now.Location())
	if local.Year() != now.Year() {
		return local.Format("Jan 2, 2006, 15:04")
	}
	return local.Format("Jan 2, 15:04")
}

// FormatClock renders a message timestamp as 24-hour HH:MM.
func FormatClock(t time.Time) string {
	return t.Local().Format("15:04")
}
