package codec

import (
	"errors"
	"fmt"
)

// MalformedBlockError reports a decode failure with the byte offset inside the
// raw block where it was detected. A malformed transaction aborts decoding of
// the whole block; no partial result is returned.
type MalformedBlockError struct {
	Offset int
	Reason string
}

func (e *MalformedBlockError) Error() string {
	return fmt.Sprintf("malformed block at offset %d: %s", e.Offset, e.Reason)
}

// IsMalformed reports whether err is (or wraps) a MalformedBlockError.
func IsMalformed(err error) bool {
	var target *MalformedBlockError
	return errors.As(err, &target)
}
