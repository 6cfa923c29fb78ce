package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"

	"github.com/chessroyale/core/auth"
	"github.com/chessroyale/core/broker"
	"github.com/chessroyale/core/config"
	"github.com/chessroyale/core/logging"
	"github.com/chessroyale/core/roomservice"
	"github.com/chessroyale/core/store"
)

var log = logging.GetLog("main")

func main() {
	configFile := flag.String("config", "./config/config.toml", "path to configuration settings file")
	port := flag.Int("port", 0, "port to listen on, overrides config file if non-zero")
	logLvl := flag.String("loglvl", "", "standard log level\n(off|critical|error|warning|notice|info|debug)")
	enableProfile := flag.Bool("profile", false, "enable CPU profiling for this run, writing cpu.pprof to the working directory")
	flag.Parse()

	if *enableProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()

	if *port != 0 {
		config.Settings.Server.Port = *port
	}
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}

	playerStore, err := store.OpenBadgerStore(config.Settings.Server.StorePath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer playerStore.Close()

	authSvc := auth.NewService(playerStore, auth.BcryptHasher{})
	roomSvc := roomservice.New(playerStore)
	pool := broker.NewPool(authSvc, roomSvc)

	ctx, cancel := context.WithCancel(context.Background())
	go roomSvc.RunMatchmaking(ctx)
	go pool.RunReaper(ctx)

	addr := fmt.Sprintf(":%d", config.Settings.Server.Port)
	mux := http.NewServeMux()
	mux.Handle("/", pool)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Noticef("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Notice("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
