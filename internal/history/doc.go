// Package history persists logged shell commands.
// Each `log` invocation appends one timestamped record to a JSON array
// stored in the user's cmdstats data directory; report commands load the
// whole collection and aggregate it in memory.
package history
