package main

import (
	"embed"
	"flag"
	"log/slog"
	"os"

	cam "github.com/rythmn1111/final-cam"
	"github.com/rythmn1111/final-cam/infra/config"
	"github.com/rythmn1111/final-cam/lib"
)

const (
	retNoErrorCode      = 0
	retGenericErrorCode = 1
)

// Deployment specific overrides of templates, static files or cam.yml
// may be dropped next to this package. Empty by default.
var fs embed.FS

func main() {
	// Use config file name from env CAM_CONFIG or cam.yml
	// Note the config file might be embedded!!!
	config.ConfigFileName = lib.GetEnvDefault("CAM_CONFIG", config.ConfigFileName)

	// The first filesystem layer location (nothing if empty)
	config.TopRootFileSystemPath = lib.GetEnvDefault("CAM_ROOT", config.TopRootFileSystemPath)
	// Second layer is current working dir
	// Third layer is this app embed fs
	// Last layer is the package own embed fs

	// Handle command line arguments
	verbose := false
	flag.StringVar(&config.Listen, "listen", config.Listen, "web server listen address")
	flag.StringVar(&config.ConfigFileName, "config", config.ConfigFileName, "config file name")
	flag.StringVar(&config.TopRootFileSystemPath, "root", config.TopRootFileSystemPath, "first layer of filesystem (optional)")
	flag.BoolVar(&verbose, "verbose", verbose, "debug logging")
	flag.Parse()
	if verbose {
		setDefaultLogger(slog.LevelDebug)
	}

	//
	// Create logger
	//
	log := slog.Default()
	log.Info("starting")

	err := cam.App(log, fs)

	code := retNoErrorCode
	if err != nil {
		code = retGenericErrorCode
		if i, ok := err.(lib.ErrorCode); ok {
			code = i.Code()
		}
		log.Error("exit", slog.Int("code", code), slog.Any("err", err))
	} else {
		log.Info("exit")
	}

	os.Exit(code)
}
