//go:build windows

package shm

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows backs named regions with pagefile-backed file mapping objects.
// The kernel reaps a region with its last handle, so Remove is a no-op and
// there is nothing to unlink.

// region holds the Windows backend state of a handle.
type region struct {
	handle windows.Handle
	held   bool
	data   []byte
	size   int
}

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOpenFileMappingW = modkernel32.NewProc("OpenFileMappingW")
)

// openFileMapping looks up an existing mapping object by name without
// creating one. x/sys/windows does not wrap OpenFileMappingW.
func openFileMapping(access uint32, name *uint16) (windows.Handle, error) {
	r0, _, e1 := procOpenFileMappingW.Call(uintptr(access), 0, uintptr(unsafe.Pointer(name)))
	h := windows.Handle(r0)
	if h == 0 {
		return 0, e1
	}
	return h, nil
}

func (r *region) acquire(name string, size int, cm createMode, access AccessMode) (created bool, err error) {
	name16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return false, opError("utf16", name, CodeInvalidName, err)
	}

	var handle windows.Handle
	switch cm {
	case openExisting:
		handle, err = openFileMapping(mapAccess(access), name16)
		if err != nil {
			return false, hostError("OpenFileMapping", name, err)
		}
	default:
		prot := uint32(windows.PAGE_READWRITE)
		if access == ReadOnly {
			prot = windows.PAGE_READONLY
		}
		handle, err = windows.CreateFileMapping(windows.InvalidHandle, nil, prot,
			uint32(uint64(size)>>32), uint32(size), name16)
		if handle == 0 {
			return false, hostError("CreateFileMapping", name, err)
		}
		// A valid handle with ERROR_ALREADY_EXISTS means the object
		// pre-existed; that is the only way Windows reports the branch.
		existed := err == windows.ERROR_ALREADY_EXISTS
		if existed && cm == createOnly {
			_ = windows.CloseHandle(handle)
			return false, opError("CreateFileMapping", name, CodeAlreadyExists, windows.ERROR_ALREADY_EXISTS)
		}
		created = !existed
	}

	addr, err := windows.MapViewOfFile(handle, mapAccess(access), 0, 0, 0)
	if err != nil {
		_ = windows.CloseHandle(handle)
		return false, opError("MapViewOfFile", name, CodeMappingFailed, err)
	}

	// Windows rounds mappings up to the allocation granularity; the region
	// descriptor holds the effective size every peer observes.
	var info windows.MemoryBasicInformation
	if err = windows.VirtualQuery(addr, &info, unsafe.Sizeof(info)); err != nil {
		_ = windows.UnmapViewOfFile(addr)
		_ = windows.CloseHandle(handle)
		return false, hostError("VirtualQuery", name, err)
	}

	r.size = int(info.RegionSize)
	r.data = unsafe.Slice((*byte)(unsafe.Pointer(addr)), r.size)
	r.handle = handle
	r.held = true
	return created, nil
}

func (r *region) unmap() error {
	if r.data == nil {
		return nil
	}
	err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&r.data[0])))
	r.data = nil
	r.size = 0
	return err
}

func (r *region) release() error {
	err := r.unmap()
	if r.held {
		if cerr := windows.CloseHandle(r.handle); cerr != nil && err == nil {
			err = cerr
		}
		r.held = false
		r.handle = 0
	}
	return err
}

func mapAccess(access AccessMode) uint32 {
	if access == ReadOnly {
		return windows.FILE_MAP_READ
	}
	return windows.FILE_MAP_READ | windows.FILE_MAP_WRITE
}

// validName checks the Windows grammar: non-empty, at most 255 bytes, and
// none of the characters \ / : * ? " < > | anywhere.
func validName(name string) bool {
	if name == "" || len(name) > maxNameLen {
		return false
	}
	return !strings.ContainsAny(name, `\/:*?"<>|`)
}

// removeRegion is a no-op on Windows: the kernel reclaims a mapping object
// with its last handle and there is no explicit unlink. It returns true for
// any valid name.
func removeRegion(name string) bool {
	return validName(name)
}

func regionExists(name string) bool {
	if !validName(name) {
		return false
	}
	name16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return false
	}
	h, err := openFileMapping(windows.FILE_MAP_READ, name16)
	if err != nil {
		return false
	}
	_ = windows.CloseHandle(h)
	return true
}

func hostError(op, name string, err error) *Error {
	errno, ok := err.(windows.Errno)
	if !ok {
		return opError(op, name, CodeUnknown, err)
	}
	var code Code
	switch errno {
	case windows.ERROR_ALREADY_EXISTS:
		code = CodeAlreadyExists
	case windows.ERROR_FILE_NOT_FOUND:
		code = CodeNotFound
	case windows.ERROR_ACCESS_DENIED:
		code = CodePermissionDenied
	case windows.ERROR_INVALID_PARAMETER:
		code = CodeInvalidArgument
	default:
		code = CodeUnknown
	}
	return opError(op, name, code, errno)
}
