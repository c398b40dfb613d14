// Package service contains the download pipeline.
//
// The Planner turns favorites into a flat, deduplicated list of download
// tasks, expanding series and seasons through the catalog. The Downloader
// executes one task at a time, streaming into a .part file that is promoted
// only after the transfer completes. Progress is emitted as Events to a
// Reporter so callers decide how, or whether, to render it.
package service
