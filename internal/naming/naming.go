// Package naming maps catalog items to file names and destination paths.
//
// Every function here is pure: identical input always yields identical output,
// which is what lets a rerun recognise files it wrote before.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/amaumene/jellyfav/internal/domain"
)

const (
	defaultExtension  = ".mkv"
	unknownSeriesName = "Unknown Series"
	bytesPerMegabyte  = 1024 * 1024
)

var forbiddenChars = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	"/", "_",
	`\`, "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeName replaces characters that are illegal in path segments with an
// underscore and trims surrounding whitespace.
func SanitizeName(raw string) string {
	return strings.TrimSpace(forbiddenChars.Replace(raw))
}

// ExtensionFor derives a lower-case file extension with exactly one leading
// dot from the item's container, defaulting to .mkv.
func ExtensionFor(item domain.CatalogItem) string {
	container := strings.TrimLeft(strings.ToLower(strings.TrimSpace(item.Container)), ".")
	if container == "" {
		return defaultExtension
	}
	return "." + container
}

// MovieDestination returns {moviesRoot}/{name}{ext}.
func MovieDestination(item domain.CatalogItem, moviesRoot string) string {
	title := segment(item.Name, "Movie-"+item.ID)
	return filepath.Join(moviesRoot, title+ExtensionFor(item))
}

// EpisodeDestination returns
// {seriesRoot}/{series}/Staffel {ss}/S{ss}E{ee} - {title}{ext}.
func EpisodeDestination(item domain.CatalogItem, seriesRoot string) string {
	season, episode := item.SeasonIndex, item.EpisodeIndex
	series := segment(item.SeriesName, unknownSeriesName)
	title := segment(item.Name, fmt.Sprintf("Episode %d", episode))

	seasonFolder := fmt.Sprintf("Staffel %02d", season)
	filename := fmt.Sprintf("S%02dE%02d - %s%s", season, episode, title, ExtensionFor(item))
	return filepath.Join(seriesRoot, series, seasonFolder, filename)
}

// segment sanitizes name, falling back when nothing usable is left. A segment
// made only of dots would walk out of the root, so it falls back too.
func segment(name, fallback string) string {
	clean := SanitizeName(name)
	if strings.Trim(clean, ".") == "" {
		return SanitizeName(fallback)
	}
	return clean
}

// FormatMegabytes renders a byte count as binary megabytes with one decimal.
func FormatMegabytes(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/bytesPerMegabyte)
}
