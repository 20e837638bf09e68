package commands

import "gitlab.com/tozd/go/errors"

// ErrUsage marks missing, extra, or unknown arguments and flags.
var ErrUsage = errors.Base("usage error")

// UsageError wraps err as an ErrUsage.
func UsageError(err error) error {
	return errors.Errorf("%w: %s", ErrUsage, err.Error())
}
