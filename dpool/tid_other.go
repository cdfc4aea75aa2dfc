//go:build !linux

package dpool

// gettid returns 0 where there is no cheap thread id; the TID log field is then left off.
func gettid() int {
	return 0
}
