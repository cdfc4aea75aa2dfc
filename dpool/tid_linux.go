package dpool

import (
	"golang.org/x/sys/unix"
)

// gettid returns the OS thread id of the calling thread, for log fields.
func gettid() int {
	return unix.Gettid()
}
