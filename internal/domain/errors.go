package domain

import "errors"

var (
	ErrAuthentication     = errors.New("authentication failed")
	ErrCatalogFetch       = errors.New("catalog fetch failed")
	ErrTransfer           = errors.New("transfer failed")
	ErrUnsupportedType    = errors.New("unsupported item type")
	ErrMissingCredentials = errors.New("missing credentials")
)
