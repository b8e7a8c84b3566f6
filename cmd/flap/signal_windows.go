//go:build windows

package main

import "os"

// reraiseInterrupt exits with the conventional interrupted status; Windows
// has no way to re-deliver a console interrupt to ourselves.
func reraiseInterrupt() {
	os.Exit(130)
}
