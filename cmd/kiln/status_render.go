package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

// tag returns the bracketed state name and the ANSI color it renders in.
func (k statusKind) tag() (string, string) {
	switch k {
	case statusOK:
		return "OK", "\x1b[32m"
	case statusWarn:
		return "WARN", "\x1b[33m"
	case statusError:
		return "ERROR", "\x1b[31m"
	default:
		return "INFO", ansiBlue
	}
}

// statusLine formats one "  Label:  [STATE] detail" row of kiln status
// output. The label column is wide enough for the longest label the status
// command prints.
func statusLine(label string, kind statusKind, detail string, colorize bool) string {
	tag, color := kind.tag()
	line := fmt.Sprintf("  %-13s [%s]", label+":", tag)
	if detail != "" {
		line += " " + detail
	}
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func sectionHeader(title string, colorize bool) string {
	line := "== " + title + " =="
	if colorize {
		return ansiBlue + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
