// Package analysis extracts summary quantities from recorded series, such
// as the dominant oscillation period of a pendulum angle.
package analysis
