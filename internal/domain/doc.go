// Package domain defines the core entities and interfaces for jellyfav.
//
// This package contains the catalog model (Session, CatalogItem), the download
// plan model (DownloadTask, DownloadResult) and the client interfaces the
// services depend on. All interfaces accept context for cancellation support.
package domain
