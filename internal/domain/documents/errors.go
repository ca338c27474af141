package documents

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrTitleRequired    = errors.New("title is required")
)
