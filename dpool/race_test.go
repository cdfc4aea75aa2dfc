//go:build race

package dpool_test

const testRace = true
