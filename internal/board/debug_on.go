//go:build weakdebug

package board

const debugChecks = true
