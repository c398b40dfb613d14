// Package app wires configuration, clients and services together and runs
// the download pipeline once.
//
// The Orchestrator sequences a run: prepare output roots, authenticate,
// fetch favorites, plan, summarize, then either preview or download. The
// Console renders plan summaries and transfer progress for a terminal.
package app
