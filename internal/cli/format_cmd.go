// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// format_cmd.go - Run the message formatter over a file or stdin.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/docchat/internal/format"
	"github.com/jeranaias/docchat/internal/ui/render"
)

// maxFormatInput bounds what "docchat format" reads.
const maxFormatInput = 1 << 20

// HandleFormat prints content the way an assistant reply would be shown.
//
//	docchat format reply.md
//	docchat format - < reply.md
//	docchat format --markdown reply.md
func HandleFormat(args Args, stdio IO) error {
	p := args.Parser
	content, err := readFormatInput(p.Positional(0), stdio.In)
	if err != nil {
		return err
	}
	blocks := format.Format(content)

	switch {
	case args.JSON:
		return NewJSONResponse(CmdFormat.String(), blocks).Print(stdio.Out)
	case p.BoolFlag("markdown"):
		fmt.Fprint(stdio.Out, format.Markdown(blocks))
		return nil
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	theme, err := themeFor(stdio.Out, cfg.UI.Theme)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdio.Out, render.New(theme, cfg.UI.WordWrap).Blocks(blocks))
	return nil
}

func readFormatInput(path string, stdin io.Reader) (string, error) {
	var r io.Reader
	switch path {
	case "", "-":
		if stdin == nil {
			return "", usageErrorf("docchat format reply.md", "format needs a file or stdin")
		}
		r = stdin
	default:
		f, err := os.Open(path)
		if err != nil {
			return "", &CommandError{Command: "format", Action: "read", Err: err}
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxFormatInput+1))
	if err != nil {
		return "", &CommandError{Command: "format", Action: "read", Err: err}
	}
	if len(data) > maxFormatInput {
		return "", usageErrorf("", "input larger than %d bytes", maxFormatInput)
	}
	return string(data), nil
}
