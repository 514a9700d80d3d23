// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"
)

// Log is the logger of simulations; it writes to stderr until InitLogFile is called
var Log = logrus.New()

// logFile holds the current log file
var logFile *os.File

// InitLogFile starts logging to <dirout>/<fnkey>.log
func InitLogFile(dirout, fnkey string) (err error) {
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory for log file:\n%v", err)
	}
	FlushLog()
	logFile, err = os.Create(filepath.Join(dirout, fnkey+".log"))
	if err != nil {
		return chk.Err("cannot create log file:\n%v", err)
	}
	Log.SetOutput(logFile)
	Log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return
}

// FlushLog closes the log file; subsequent messages go to stderr
func FlushLog() {
	if logFile == nil {
		return
	}
	logFile.Sync()
	logFile.Close()
	logFile = nil
	Log.SetOutput(os.Stderr)
}

// LogErr logs error (if any) and returns true if the simulation must stop
func LogErr(err error, msg string) (stop bool) {
	if err == nil {
		return false
	}
	Log.WithError(err).Error(msg)
	return true
}
