//go:build linux

package shm

import (
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"
)

// Linux backs named regions with files under /dev/shm, the same objects
// glibc's shm_open produces. Names persist until unlinked; Close never
// unlinks, Remove does.
const devShmDir = "/dev/shm"

// region holds the Linux backend state of a handle.
type region struct {
	fd   int
	held bool
	data []byte
	size int
	// path under /dev/shm actually used in syscalls; Name() keeps the
	// user-supplied form.
	native string
}

func (r *region) acquire(name string, size int, cm createMode, access AccessMode) (created bool, err error) {
	flags := unix.O_RDWR | unix.O_CLOEXEC
	if access == ReadOnly {
		flags = unix.O_RDONLY | unix.O_CLOEXEC
	}
	path := nativePath(name)

	var fd int
	switch cm {
	case createOnly:
		fd, err = unix.Open(path, flags|unix.O_CREAT|unix.O_EXCL, 0o666)
		if err != nil {
			return false, hostError("open", name, err)
		}
		created = true
	case openOrCreate, openAlways:
		// Open-first, then exclusive-create, looping on races so that the
		// creator flag stays truthful even when peers create or unlink the
		// name concurrently.
		for {
			fd, err = unix.Open(path, flags, 0)
			if err == nil {
				break
			}
			if err != unix.ENOENT {
				return false, hostError("open", name, err)
			}
			fd, err = unix.Open(path, flags|unix.O_CREAT|unix.O_EXCL, 0o666)
			if err == nil {
				created = true
				break
			}
			if err != unix.EEXIST {
				return false, hostError("open", name, err)
			}
		}
	case openExisting:
		fd, err = unix.Open(path, flags, 0)
		if err != nil {
			return false, hostError("open", name, err)
		}
	}

	discard := func() {
		_ = unix.Close(fd)
		if created {
			_ = unix.Unlink(path)
		}
	}

	if created {
		if !devShmHasSpace(uint64(size)) {
			discard()
			return false, opError("ftruncate", name, CodeUnknown, unix.ENOSPC)
		}
		if err = unix.Ftruncate(fd, int64(size)); err != nil {
			discard()
			return false, hostError("ftruncate", name, err)
		}
		r.size = size
	} else {
		var st unix.Stat_t
		if err = unix.Fstat(fd, &st); err != nil {
			discard()
			return false, hostError("fstat", name, err)
		}
		r.size = int(st.Size)
	}

	prot := unix.PROT_READ
	if access == ReadWrite {
		prot |= unix.PROT_WRITE
	}
	r.data, err = unix.Mmap(fd, 0, r.size, prot, unix.MAP_SHARED)
	if err != nil {
		discard()
		r.size = 0
		return false, opError("mmap", name, CodeMappingFailed, err)
	}

	r.fd = fd
	r.held = true
	r.native = path
	return created, nil
}

func (r *region) unmap() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	r.size = 0
	return err
}

func (r *region) release() error {
	err := r.unmap()
	if r.held {
		if cerr := unix.Close(r.fd); cerr != nil && err == nil {
			err = cerr
		}
		r.held = false
		r.fd = -1
	}
	return err
}

// validName checks the POSIX grammar: non-empty, at most 255 bytes, and '/'
// allowed only as a single leading character. A bare "/" is invalid.
func validName(name string) bool {
	if name == "" || name == "/" || len(name) > maxNameLen {
		return false
	}
	rest := name
	if rest[0] == '/' {
		rest = rest[1:]
	}
	return !strings.Contains(rest, "/")
}

func nativePath(name string) string {
	return devShmDir + "/" + strings.TrimPrefix(name, "/")
}

func removeRegion(name string) bool {
	if !validName(name) {
		return false
	}
	return unix.Unlink(nativePath(name)) == nil
}

func regionExists(name string) bool {
	if !validName(name) {
		return false
	}
	fd, err := unix.Open(nativePath(name), unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return false
	}
	_ = unix.Close(fd)
	return true
}

// devShmHasSpace reports whether /dev/shm has room for a region of the
// given size. When the filesystem cannot be inspected the kernel gets the
// final word.
func devShmHasSpace(need uint64) bool {
	usage, err := disk.Usage(devShmDir)
	if err != nil {
		logf(levelDebug, "stat %s: %v", devShmDir, err)
		return true
	}
	return usage.Free >= need
}

func hostError(op, name string, err error) *Error {
	errno, ok := err.(unix.Errno)
	if !ok {
		return opError(op, name, CodeUnknown, err)
	}
	var code Code
	switch errno {
	case unix.EEXIST:
		code = CodeAlreadyExists
	case unix.ENOENT:
		code = CodeNotFound
	case unix.EACCES, unix.EPERM:
		code = CodePermissionDenied
	case unix.EINVAL:
		code = CodeInvalidArgument
	default:
		code = CodeUnknown
	}
	return opError(op, name, code, errno)
}
