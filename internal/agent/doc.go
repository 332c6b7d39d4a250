// Package agent talks to the remote UI-generation agent.
//
// The agent works asynchronously: a prompt is submitted as a job and the
// job is polled until it completes, fails, or the deadline passes. The
// completed job result is returned as decoded JSON for discovery and
// normalization downstream.
package agent
