//go:build combdebug

package comb

const debugChecks = true
