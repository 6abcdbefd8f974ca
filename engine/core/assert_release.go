//go:build release

package core

const debugChecks = false
