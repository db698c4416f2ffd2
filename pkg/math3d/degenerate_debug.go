//go:build lumendebug

package math3d

const debugChecks = true
