package win

import (
	"errors"
	"syscall"
)

// Status codes returned by GetAdaptersAddresses. They are declared here rather
// than taken from x/sys/windows so that non-windows builds can script them.
const (
	ErrorSuccess          syscall.Errno = 0
	ErrorNotEnoughMemory  syscall.Errno = 8
	ErrorInvalidParameter syscall.Errno = 87
	ErrorBufferOverflow   syscall.Errno = 111
	ErrorNoData           syscall.Errno = 232
)

var ErrNotSupported = errors.New("adapter enumeration is only supported on windows")
