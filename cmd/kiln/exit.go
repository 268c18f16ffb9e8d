package main

import "fmt"

// exitCodeError carries a daemon exit code up to main so the kiln process
// terminates with the same status the remote command produced. It prints
// nothing: the daemon's stderr output already explained the failure.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// exitWithCode converts a nonzero daemon exit code into an error for cobra.
func exitWithCode(code int) error {
	if code == 0 {
		return nil
	}
	return &exitCodeError{code: code}
}
