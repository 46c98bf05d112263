package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects the progress view of batch commands.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = []uiMode{uiModeAuto, uiModeOn, uiModeOff}

func readUIMode(value string) (uiMode, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return uiModeAuto, nil
	}
	for _, m := range uiModes {
		if string(m) == v {
			return m, nil
		}
	}
	return "", fmt.Errorf("--ui: unknown mode %q (expected auto|on|off)", value)
}

// useProgressView decides whether a batch of files gets the interactive
// view. Auto mode wants an interactive stdout, more than one file and no
// --quiet.
func useProgressView(mode uiMode, files int, quiet bool) bool {
	if mode != uiModeAuto {
		return mode == uiModeOn
	}
	return !quiet && files > 1 && isTerminal(os.Stdout)
}
