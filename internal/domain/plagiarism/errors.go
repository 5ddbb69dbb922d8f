package plagiarism

import "errors"

// Sentinel kinds for plagiarism pipeline errors.
var (
	ErrNoMetadataSource = errors.New("no repository metadata source configured")
)
