// Package main is the entry point for the mesh viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/viewer"
	"github.com/Faultbox/meshview/pkg/formats"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	config.ParseFlags()

	args := config.Args()
	if len(args) != 2 {
		usage()
		return exitUsage
	}
	meshPath, texturePath := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return exitFailure
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return exitFailure
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			logger.Error("failed to write config", zap.String("path", path), zap.Error(err))
			return exitFailure
		}
		logger.Info("config written", zap.String("path", path))
	}

	mesh, err := model.Load(meshPath)
	if err != nil {
		logger.Error("failed to load mesh", zap.String("kind", loadErrorKind(err)), zap.Error(err))
		fmt.Fprintf(os.Stderr, "meshview: %v\n", err)
		return exitFailure
	}
	viewer.LogMeshStats(meshPath, mesh)

	tex, err := texture.Load(texturePath)
	if err != nil {
		logger.Error("failed to load texture", zap.Error(err))
		fmt.Fprintf(os.Stderr, "meshview: %v\n", err)
		return exitFailure
	}

	v, err := viewer.New(cfg, mesh, tex)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		return exitFailure
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return exitFailure
	}

	logger.Info("viewer closed normally")
	return 0
}

// loadErrorKind names the failure class of a mesh load error.
func loadErrorKind(err error) string {
	switch {
	case errors.Is(err, formats.ErrTooManyVertices):
		return "capacity"
	case formats.IsFormatError(err):
		return "format"
	case errors.Is(err, model.ErrNoVertices):
		return "empty"
	default:
		return "io"
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <mesh.obj> <texture>\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}
