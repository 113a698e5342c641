// Package services implements the driving port interfaces.
// Services contain the pipeline orchestration logic and coordinate
// calls to driven ports (adapters).
//
// Both pipelines are strictly sequential: one point finishes all of its
// repository calls before the next begins, and nothing is retried.
package services
