package shm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Internal leveled logger for non-fatal teardown failures. The package
// never logs on success paths.

const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
	levelNoPrint
)

var (
	logLevel           = levelWarn
	logOut   io.Writer = os.Stderr

	levelName = []string{"Trace", "Debug", "Info", "Warn", "Error"}
)

func init() {
	if v := os.Getenv("SHMGO_LOG_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n <= levelNoPrint {
			logLevel = n
		}
	}
}

// SetLogLevel changes the internal logger's level. The default is Warn; the
// process env SHMGO_LOG_LEVEL also sets it.
func SetLogLevel(l int) {
	if l <= levelNoPrint {
		logLevel = l
	}
}

func logf(level int, format string, a ...interface{}) {
	if level < logLevel || level >= levelNoPrint {
		return
	}
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "???", 0
	}
	prefix := fmt.Sprintf("%s %s %s:%d shm ", levelName[level],
		time.Now().Format("2006-01-02 15:04:05.999999"), filepath.Base(file), line)
	if _, err := fmt.Fprintf(logOut, prefix+format+"\n", a...); err != nil {
		fmt.Fprintf(os.Stderr, "shm logger write failed: %v\n", err)
	}
}
