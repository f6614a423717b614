/*
Runs the scanner: a simulated spatial understanding provider feeding the
periodic mesh import cycle, displayed through the headless renderer.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/arkestra/spatialscan/engine"
	"github.com/arkestra/spatialscan/engine/config"
	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/provider"
	"github.com/arkestra/spatialscan/engine/renderer"
)

func main() {
	configPath := flag.String("config", "", "path to a spatialscan.toml (default: search standard locations)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	scan := provider.NewSimulatedScan(provider.SimulatedScanConfig{
		Width:       cfg.Provider.Width,
		Depth:       cfg.Provider.Depth,
		MaxSegments: cfg.Provider.MaxSegments,
	})
	backend := renderer.NewHeadlessBackend()

	eng, err := engine.New(&engine.ApplicationConfig{
		Name:           cfg.Application.Name,
		LogLevel:       cfg.Application.LogLevel,
		TickRate:       cfg.Application.TickRate,
		ImportPeriod:   cfg.Import.PeriodSeconds,
		ImportMaterial: cfg.Import.Material,
		ScanDuration:   cfg.Import.ScanDurationSeconds,
		SurfaceVisible: cfg.Import.Visible,
		ConfigPath:     *configPath,
	}, scan, backend)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}()

	if err := eng.Run(); err != nil {
		panic(err)
	}

	if err := eng.Shutdown(); err != nil {
		panic(err)
	}
}
