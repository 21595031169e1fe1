// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Log formats
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// NewHandler builds the slog handler for format. Auto picks text when w is
// a terminal and JSON otherwise.
func NewHandler(format string, w io.Writer) (slog.Handler, error) {
	if format == "" || format == FormatAuto {
		format = FormatJSON
		if isTerminal(w) {
			format = FormatText
		}
	}

	switch format {
	case FormatText:
		return slog.NewTextHandler(w, nil), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, nil), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Setup installs the handler for format as the slog default
func Setup(format string, w io.Writer) error {
	h, err := NewHandler(format, w)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
