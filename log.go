package canopy

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// LogLevel orders log output by severity.
type LogLevel uint8

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "OFF"
}

// Each call site may burst a few lines, then one per second. Misconfigured
// per-frame calls would otherwise write a line every tick.
const (
	logSiteEvery = time.Second
	logSiteBurst = 5
)

var (
	logger   = log.New(os.Stderr, "[canopy] ", log.LstdFlags)
	logLevel = LevelWarn
	logSites = map[string]*rate.Limiter{}
)

// SetLogOutput redirects canopy's log lines. Passing nil restores stderr.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logger.SetOutput(w)
}

// SetLogLevel sets the minimum level written. The default is LevelWarn.
func SetLogLevel(level LogLevel) {
	logLevel = level
}

// CurrentLogLevel returns the active minimum level.
func CurrentLogLevel() LogLevel {
	return logLevel
}

func logf(level LogLevel, site, format string, args ...any) {
	if level < logLevel || logLevel == LevelOff {
		return
	}
	lim, ok := logSites[site]
	if !ok {
		lim = rate.NewLimiter(rate.Every(logSiteEvery), logSiteBurst)
		logSites[site] = lim
	}
	if !lim.Allow() {
		return
	}
	logger.Printf("%s %s: %s", level, site, fmt.Sprintf(format, args...))
}

func logDebugf(site, format string, args ...any) { logf(LevelDebug, site, format, args...) }
func logInfof(site, format string, args ...any)  { logf(LevelInfo, site, format, args...) }
func logWarnf(site, format string, args ...any)  { logf(LevelWarn, site, format, args...) }
func logErrorf(site, format string, args ...any) { logf(LevelError, site, format, args...) }

// safeCall runs fn and turns a panic into a logged error. It reports whether
// fn returned normally.
func safeCall(site string, fn func()) bool {
	return safeCallFor(site, "listener", fn)
}

// safeCallFor is safeCall with the panicking callback named in the message.
// site must come from a fixed set: each one keeps a rate limiter for the
// life of the process.
func safeCallFor(site, subject string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logErrorf(site, "%s panicked: %v", subject, r)
			ok = false
		}
	}()
	fn()
	return true
}
