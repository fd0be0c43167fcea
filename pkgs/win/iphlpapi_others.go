//go:build !windows

package win

func GetAdaptersAddresses(family, flags uint32, buf []byte, size *uint32) error {
	return ErrNotSupported
}

// LocalAlloc falls back to the Go heap where there is no LocalAlloc.
func LocalAlloc(size uint32) ([]byte, error) {
	return make([]byte, size), nil
}

func LocalFree(b []byte) error {
	return nil
}
