//go:build !windows

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
)

// reraiseInterrupt restores the default SIGINT disposition and sends SIGINT
// to this process, so the shell sees a normal interrupted exit. If the
// signal does not terminate us, exit with the conventional status 130.
func reraiseInterrupt() {
	signal.Reset(os.Interrupt)
	if err := unix.Kill(os.Getpid(), unix.SIGINT); err != nil {
		fmt.Fprintf(os.Stderr, "re-raise SIGINT: %v\n", err)
	}
	time.Sleep(100 * time.Millisecond)
	os.Exit(130)
}
