package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"snapbuy/internal/app"
	"snapbuy/internal/ipc"
	"snapbuy/pkg/config"
	"snapbuy/pkg/global"
	"snapbuy/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to settings file")
	debug := flag.Bool("debug", false, "enable debug logging and the timeline panel")
	notifyCommand := flag.String("notify", "", "custom notification command")
	flag.Parse()

	logLevel := zerolog.InfoLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}

	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting Snapbuy",
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", *debug)

	path := *configPath
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			log.Fatal("Failed to resolve settings path", err)
		}
	}

	store := config.New(path, log)
	if err := store.Load(); err != nil {
		log.Fatal("Failed to load settings", err, "path", path)
	}
	log.Info("Settings loaded",
		"path", path,
		"method", string(store.BuyMethod()),
		"target_window", store.TargetWindow())

	global.InitGlobals(store, log, *notifyCommand)

	stopWatch, err := store.Watch(nil)
	if err != nil {
		log.Error("Settings watcher unavailable", err)
	} else {
		defer stopWatch()
	}

	snapbuy, err := app.NewSnapBuy(store, log, *debug)
	if err != nil {
		log.Fatal("Failed to create application", err)
	}
	defer snapbuy.Cleanup()

	go ipc.StartSocketServer(snapbuy)

	if err := snapbuy.Run(); err != nil {
		log.Fatal("Application error", err)
	}
}
