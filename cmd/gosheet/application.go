package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mharlow/gosheet/sheet"
)

// application holds the single sheet.Sheet a CLI invocation operates on,
// plus the flags that configure it. Every subcommand shares one instance,
// constructed by the root command's PersistentPreRunE.
type application struct {
	maxRows  int
	maxCols  int
	seedPath string

	sheet *sheet.Sheet
}

func (a *application) init() error {
	var opts []sheet.Option
	if a.maxRows > 0 {
		opts = append(opts, sheet.WithMaxRows(a.maxRows))
	}
	if a.maxCols > 0 {
		opts = append(opts, sheet.WithMaxCols(a.maxCols))
	}
	a.sheet = sheet.NewSheet(opts...)

	if a.seedPath == "" {
		return nil
	}
	return a.replaySeed(a.seedPath)
}

// replaySeed reads a file of newline-separated "set A1 text" / "clear A1"
// commands and applies them in order, so a CLI invocation can start from a
// known grid instead of an empty one. Blank lines and lines starting with
// '#' are skipped.
func (a *application) replaySeed(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.SplitN(text, " ", 3)
		switch fields[0] {
		case "set":
			if len(fields) < 3 {
				return fmt.Errorf("seed file %s line %d: set requires an address and text", path, line)
			}
			pos, err := parseAddressArg(fields[1])
			if err != nil {
				return fmt.Errorf("seed file %s line %d: %w", path, line, err)
			}
			if err := a.sheet.SetCell(pos, fields[2]); err != nil {
				return fmt.Errorf("seed file %s line %d: %w", path, line, err)
			}
		case "clear":
			if len(fields) < 2 {
				return fmt.Errorf("seed file %s line %d: clear requires an address", path, line)
			}
			pos, err := parseAddressArg(fields[1])
			if err != nil {
				return fmt.Errorf("seed file %s line %d: %w", path, line, err)
			}
			if err := a.sheet.ClearCell(pos); err != nil {
				return fmt.Errorf("seed file %s line %d: %w", path, line, err)
			}
		default:
			return fmt.Errorf("seed file %s line %d: unknown command %q", path, line, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	slog.Info("replayed seed file", slog.String("path", path), slog.Int("lines", line))
	return nil
}
