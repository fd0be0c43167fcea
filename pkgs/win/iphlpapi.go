//go:build windows

package win

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modiphlpapi = windows.NewLazySystemDLL("iphlpapi.dll")

	procGetAdaptersAddresses = modiphlpapi.NewProc("GetAdaptersAddresses")
)

// lptr is LMEM_FIXED|LMEM_ZEROINIT.
const lptr = 0x0040

// GetAdaptersAddresses fills buf with the IP_ADAPTER_ADDRESSES_LH list. An
// empty buf is passed as NULL, which makes the call report the required size.
// https://learn.microsoft.com/en-us/windows/win32/api/iphlpapi/nf-iphlpapi-getadaptersaddresses
func GetAdaptersAddresses(family, flags uint32, buf []byte, size *uint32) error {
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	return SyscallOnlyReturnError(procGetAdaptersAddresses.Addr(),
		uintptr(family), uintptr(flags), 0, uintptr(p), uintptr(unsafe.Pointer(size)))
}

// LocalAlloc returns size zeroed bytes owned by the OS local heap. The memory
// is invisible to the garbage collector and must be returned with LocalFree.
func LocalAlloc(size uint32) ([]byte, error) {
	h, err := windows.LocalAlloc(lptr, size)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(h)), size), nil
}

func LocalFree(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := windows.LocalFree(windows.Handle(uintptr(unsafe.Pointer(&b[0]))))
	return err
}

func SyscallOnlyReturnError(trap uintptr, args ...uintptr) error {
	r0, _, _ := syscall.SyscallN(trap, args...)
	if r0 != 0 {
		return syscall.Errno(r0)
	}
	return nil
}
