// Package clients provides adapters for external services.
//
// JellyfinClient implements the domain MediaServer interface against the
// Jellyfin (Emby compatible) HTTP API. All calls take a context and an
// explicit Session; the client keeps no credential state of its own.
package clients
