package shm

// AccessMode selects the protection applied to a mapping.
type AccessMode int

const (
	// ReadOnly maps the region without write permission. Writes through a
	// read-only handle fault at the OS protection level.
	ReadOnly AccessMode = iota
	// ReadWrite maps the region with read and write permission.
	ReadWrite
)

func (m AccessMode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	}
	return "unknown"
}

// createMode selects the acquisition behavior of a constructor.
type createMode int

const (
	createOnly createMode = iota
	openOrCreate
	openAlways
	openExisting
)

func (c createMode) String() string {
	switch c {
	case createOnly:
		return "create"
	case openOrCreate:
		return "open-or-create"
	case openAlways:
		return "open-always"
	case openExisting:
		return "open"
	}
	return "unknown"
}

// maxNameLen bounds region names on all supported hosts.
const maxNameLen = 255
