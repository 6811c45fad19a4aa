// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prefs.go - AI preference settings.
//
//	docchat prefs [show]
//	docchat prefs set KEY VALUE
//	docchat prefs keys
package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/docchat/internal/preferences"
)

// HandlePrefs dispatches the prefs subcommands.
func HandlePrefs(env *Env, args Args, stdio IO) error {
	p := args.Parser
	switch args.Subcommand() {
	case "", "show":
		return prefsShow(env, args, stdio)
	case "set":
		key := p.Positional(1)
		if key == "" || p.PositionalCount() < 3 {
			return usageErrorf("docchat prefs set outputFormat table", "prefs set needs a key and a value")
		}
		return prefsSet(env, args, stdio, key, JoinPositionalArgs(p, 2))
	case "keys":
		for _, k := range preferences.Keys() {
			fmt.Fprintln(stdio.Out, k)
		}
		return nil
	default:
		return usageErrorf("docchat prefs show", "unknown prefs subcommand %q", p.Subcommand())
	}
}

func prefsShow(env *Env, args Args, stdio IO) error {
	prefs := env.Preferences()
	if args.JSON {
		return NewJSONResponse(CmdPrefs.String(), prefs).Print(stdio.Out)
	}
	if prefs == nil {
		fmt.Fprintln(stdio.Out, "No preferences saved")
		return nil
	}

	rows := [][2]string{
		{"outputFormat", prefs.OutputFormat},
		{"outputLanguage", prefs.OutputLanguage},
		{"customInstructions", prefs.CustomInstructions},
		{"provider", prefs.Provider},
		{"model", prefs.Model},
		{"mode", prefs.Mode},
	}
	for _, r := range rows {
		if r[1] == "" {
			r[1] = "-"
		}
		fmt.Fprintf(stdio.Out, "%-20s %s\n", r[0], r[1])
	}
	if len(prefs.Agents) > 0 {
		fmt.Fprintln(stdio.Out, "agents:")
		for _, a := range prefs.Agents {
			mark := "[ ]"
			if a.Enabled {
				mark = "[x]"
			}
			fmt.Fprintf(stdio.Out, "  %s %-8s %s\n", mark, a.ID, a.Name)
		}
	}
	return nil
}

func prefsSet(env *Env, args Args, stdio IO, key, value string) error {
	prefs := env.Preferences()
	if prefs == nil {
		prefs = &preferences.AIPreferences{}
	}
	if err := preferences.Set(prefs, key, strings.TrimSpace(value)); err != nil {
		return &UsageError{Message: err.Error(), Example: "docchat prefs set outputFormat table"}
	}
	if err := preferences.Save(env.Slot, prefs); err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse(CmdPrefs.String(), prefs).Print(stdio.Out)
	}
	fmt.Fprintf(stdio.Out, "Set %s\n", key)
	return nil
}
