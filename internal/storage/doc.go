// Package storage provides the filesystem side of a download: existence
// checks, directory creation and the temporary .part file that is atomically
// promoted to its final name once a transfer completes.
package storage
