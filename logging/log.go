// Package logging is a thin helper around "github.com/op/go-logging" so
// each package in chessroyale can grab a preconfigured, named logger in one
// line instead of repeating backend/formatter setup everywhere.
package logging

import (
	golog "log"
	"os"

	"github.com/op/go-logging"

	"github.com/chessroyale/core/config"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortpkg:-10.10s}:%{shortfile:-16.16s} %{level:-7.7s}:  %{message}`,
)

// GetLog returns a Logger named after the calling package, preconfigured
// with a stdout backend at the level configured in config.Settings.Log.
func GetLog(name string) *logging.Logger {
	log := logging.MustGetLogger(name)
	backend := logging.NewLogBackend(os.Stdout, "", golog.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.LogLevel), "")
	log.SetBackend(leveled)
	return log
}
