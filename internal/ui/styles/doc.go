// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the color palette and lipgloss styles for docchat.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. A Theme is built from a configured name:

	auto  - ask the terminal for its background
	dark  - force the dark palette
	light - force the light palette
	plain - no color at all (pipes, dumb terminals)

# Usage Example

	theme := styles.NewTheme(cfg.UI.Theme)
	fmt.Println(theme.UserLabel.Render("You"))
*/
package styles
