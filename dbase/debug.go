package dbase

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	debugMu     sync.RWMutex
	debug       = false
	debugLogger = log.New(os.Stdout, "[dbase] [DEBUG] ", log.LstdFlags)
	errorLogger = log.New(os.Stdout, "[dbase] [ERROR] ", log.LstdFlags)
)

// Debug enables or disables debug output and sets its destination.
// A nil writer keeps the current destination.
func Debug(enabled bool, out io.Writer) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debug = enabled
	if out != nil {
		debugLogger.SetOutput(out)
		errorLogger.SetOutput(out)
	}
}

func debugf(format string, v ...interface{}) {
	debugMu.RLock()
	defer debugMu.RUnlock()
	if debug {
		debugLogger.Printf(format, v...)
	}
}

func errorf(format string, v ...interface{}) {
	debugMu.RLock()
	defer debugMu.RUnlock()
	if debug {
		errorLogger.Printf(format, v...)
	}
}
