// Package config reads chessroyale's toml settings file into the package
// level Settings value, the same load-once-at-startup shape the reference
// engine uses for its own config package.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LogLevel is the general log level, set by default, the config file, or
// overridden from the command line.
var LogLevel = LogLevels["info"]

// ConfFile is the path to the toml settings file. Must be set before Setup.
var ConfFile = "./config/config.toml"

// Settings is the global configuration read in from file.
var Settings Conf

var initialized = false

// Conf is the root shape of config.toml.
type Conf struct {
	Server      serverConfiguration
	Game        gameConfiguration
	Matchmaking matchmakingConfiguration
	Log         logConfiguration
}

type serverConfiguration struct {
	Port        int
	StorePath   string
	ReaperEvery int // seconds between unauthenticated-connection sweeps
	LoginGrace  int // seconds an anonymous connection is allowed to live
}

type gameConfiguration struct {
	BlitzMinutes   int
	RapidMinutes   int
	ClassicMinutes int
	FirstMoveGrace int // seconds
}

type matchmakingConfiguration struct {
	SweepEvery int // seconds between matchmaking sweeps
	EloK       int // Elo K-factor
}

type logConfiguration struct {
	Level string
}

func init() {
	Settings.Server.Port = 8080
	Settings.Server.StorePath = "./data/players"
	Settings.Server.ReaperEvery = 2
	Settings.Server.LoginGrace = 10

	Settings.Game.BlitzMinutes = 5
	Settings.Game.RapidMinutes = 30
	Settings.Game.ClassicMinutes = 120
	Settings.Game.FirstMoveGrace = 30

	Settings.Matchmaking.SweepEvery = 5
	Settings.Matchmaking.EloK = 30

	Settings.Log.Level = "info"
}

// Setup reads ConfFile into Settings, leaving the built-in defaults above in
// place for anything the file does not set. Safe to call more than once;
// only the first call has an effect.
func Setup() {
	if initialized {
		return
	}
	if _, err := toml.DecodeFile(resolveConfFile(), &Settings); err != nil {
		fmt.Println(err)
	}
	setupLogLevel()
	initialized = true
}

// resolveConfFile finds ConfFile relative to the working directory first,
// falling back to the directory the binary was launched from. Absolute
// paths pass through untouched. Returns ConfFile unchanged if it can't be
// found anywhere, so the caller's toml.DecodeFile reports the real error.
func resolveConfFile() string {
	if filepath.IsAbs(ConfFile) {
		return ConfFile
	}
	if wd, err := os.Getwd(); err == nil {
		if candidate := filepath.Join(wd, ConfFile); fileExists(candidate) {
			return candidate
		}
	}
	if exe, err := os.Executable(); err == nil {
		if candidate := filepath.Join(filepath.Dir(exe), ConfFile); fileExists(candidate) {
			return candidate
		}
	}
	return ConfFile
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func setupLogLevel() {
	if Settings.Log.Level != "" {
		if lvl, ok := LogLevels[Settings.Log.Level]; ok {
			LogLevel = lvl
		}
	}
}

// LogLevels maps string names to go-logging level integers.
var LogLevels = map[string]int{
	"off":      -1,
	"critical": 0,
	"error":    1,
	"warning":  2,
	"notice":   3,
	"info":     4,
	"debug":    5,
}
