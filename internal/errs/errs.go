package errs

import (
	"errors"
)

var (
	// ErrNotFound indicates that an input file does not exist.
	ErrNotFound = errors.New("file does not exist")
	// ErrPermission indicates that a file could not be opened for lack of permission.
	ErrPermission = errors.New("insufficient permission")
	// ErrMalformedJSON indicates that an archive is not valid JSON.
	ErrMalformedJSON = errors.New("archive is not valid JSON")
	// ErrWrongFormat indicates that an archive parsed but does not have the archive shape.
	ErrWrongFormat = errors.New("archive corrupted or wrong format")
	// ErrInvalidPlaylistURL indicates that a link does not point to a YouTube playlist.
	ErrInvalidPlaylistURL = errors.New("invalid playlist url")
	// ErrAPIKeyExpired indicates that the YouTube Data API rejected the key.
	ErrAPIKeyExpired = errors.New("api key expired or invalid")
	// ErrPlaylistNotFound indicates that the playlist does not exist or is private.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrSameFile indicates that an input and the output refer to the same file.
	ErrSameFile = errors.New("input and output are the same file")
	// ErrDeclined indicates that the user refused to overwrite an existing file.
	ErrDeclined = errors.New("overwrite declined")
	// ErrNotInteractive indicates that confirmation was needed but stdin is not a terminal.
	ErrNotInteractive = errors.New("output exists and stdin is not a terminal; pass --yes to overwrite")
)
