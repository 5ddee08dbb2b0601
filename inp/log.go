// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// logging levels
const (
	LogDebug = iota
	LogInfo
	LogWarning
	LogError
)

var logLevelNames = []string{"DEBUG", "INFO", "WARNING", "ERROR"}

// logger holds the log buffer; only the root processor writes
var logger struct {
	buf   bytes.Buffer
	path  string // "" => logging is off
	level int
}

// LogLevel returns the level corresponding to a name; e.g. "info" or "WARNING"
func LogLevel(name string) (level int, err error) {
	if name == "" {
		return LogInfo, nil
	}
	for i, n := range logLevelNames {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}
	return 0, chk.Err("logging level %q is invalid; options are debug, info, warning and error", name)
}

// InitLogFile starts a new log buffer to be written to path by FlushLog
//  Note: path == "" turns logging off
func InitLogFile(path, level string) (err error) {
	logger.buf.Reset()
	logger.path = ""
	if path == "" {
		return
	}
	logger.level, err = LogLevel(level)
	if err != nil {
		return
	}
	if mpi.IsOn() && mpi.WorldRank() != 0 {
		return
	}
	logger.path = path
	return
}

// Log appends a message with given level to the log buffer
func Log(level int, msg string, prm ...interface{}) {
	if logger.path == "" || level < logger.level {
		return
	}
	io.Ff(&logger.buf, "%s %-7s %s\n", time.Now().Format("2006-01-02 15:04:05"), logLevelNames[level], io.Sf(msg, prm...))
}

// LogErr logs err (if not nil) with level LogError and returns true if err != nil
func LogErr(err error, msg string) bool {
	if err == nil {
		return false
	}
	Log(LogError, "%s: %v", msg, err)
	return true
}

// FlushLog writes the log buffer to file and clears the buffer
func FlushLog() (err error) {
	if logger.path == "" || logger.buf.Len() == 0 {
		return
	}
	err = os.MkdirAll(filepath.Dir(logger.path), 0777)
	if err != nil {
		return chk.Err("cannot create directory for log file %q:\n%v", logger.path, err)
	}
	fil, err := os.OpenFile(logger.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return chk.Err("cannot open log file %q:\n%v", logger.path, err)
	}
	defer fil.Close()
	_, err = logger.buf.WriteTo(fil)
	return
}
