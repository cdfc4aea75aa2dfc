//go:build !race

package dsync_test

const testRace = false
