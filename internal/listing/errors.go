package listing

import (
	"errors"
	"fmt"
)

// ErrMalformedBuffer is matched by every structural decode failure.
var ErrMalformedBuffer = errors.New("malformed listing buffer")

// TruncatedRecordError reports a field that runs past the end of the buffer.
type TruncatedRecordError struct {
	Offset int    // Start of the record being decoded
	Field  string // Field that could not be read
	Need   int    // Bytes required for the field
	Have   int    // Bytes remaining in the buffer
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("truncated record at offset %d: %s needs %d bytes, %d remaining",
		e.Offset, e.Field, e.Need, e.Have)
}

func (e *TruncatedRecordError) Unwrap() error {
	return ErrMalformedBuffer
}
