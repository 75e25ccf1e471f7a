//go:build !weakdebug

package board

// debugChecks enables the full consistency check after every DoMove and
// Unmove. Build with -tags weakdebug to turn it on.
const debugChecks = false
