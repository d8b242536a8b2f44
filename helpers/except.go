// Except.go: Contains functions to make handling panics less PITA

package helpers

import (
	"fmt"
	"runtime"

	"github.com/Seklfreak/robyul-invites/cache"
	"github.com/getsentry/raven-go"
)

// DEBUG_MODE prints stack traces of recovered panics
var DEBUG_MODE = false

// Recover recover()s, logs the error and sends it to sentry
func Recover() {
	err := recover()
	if err != nil {
		reportPanic(err)
	}
}

func reportPanic(err interface{}) {
	if DEBUG_MODE {
		buf := make([]byte, 1<<16)
		stackSize := runtime.Stack(buf, false)
		fmt.Println(string(buf[0:stackSize]))
	}

	if cache.HasLogger() {
		cache.GetLogger().WithField("module", "helpers").Errorf("recovered from panic: %#v", err)
	} else {
		fmt.Printf("%#v\n", err)
	}

	if e, ok := err.(error); ok {
		raven.CaptureError(e, map[string]string{})
		return
	}
	raven.CaptureError(fmt.Errorf("%#v", err), map[string]string{})
}
