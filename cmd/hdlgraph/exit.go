package main

import (
	"errors"
	"fmt"
)

// exitError ends the process with code without printing anything more.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func asExitError(err error, target *exitError) bool {
	return errors.As(err, target)
}

// errFindings is returned when a command ran but reported errors.
var errFindings = exitError{code: 2}
