package dialogs

import "errors"

var (
	errEmptyLocation   = errors.New("enter a location")
	errInvalidLocation = errors.New("not a URL or absolute path")
)
