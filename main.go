package main

import (
	"flag"
	"time"

	log "github.com/sirupsen/logrus"

	"eightball/common"
	"eightball/engine"
	"eightball/render"
	"eightball/services"
)

func main() {
	configFile := flag.String("config", "", "Path to configuration YAML file")
	flag.Parse()
	if *configFile == "" {
		log.Fatal("-config not given.")
	}
	config, err := common.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Fail to load config file from %v. %v", *configFile, err)
	}

	common.SetupLogger(config)
	common.LogStartupSummary(config)

	eng := engine.New(config.Simulation.ContainerRadius)
	for i, b := range config.Simulation.Balls {
		pos := engine.Vec2{X: b.Pos[0], Y: b.Pos[1]}
		vel := engine.Vec2{X: b.Vel[0], Y: b.Vel[1]}
		if err := eng.AddBall(pos, vel, b.Radius, b.Mass); err != nil {
			log.WithField("index", i).Fatalf("failed to add configured ball: %v", err)
		}
	}
	if err := eng.Initialize(); err != nil {
		log.Fatalf("failed to initialize engine: %v", err)
	}

	var telemetry *services.Telemetry
	if config.Telemetry.Addr != "" {
		tick := time.Duration(config.Telemetry.Tick * float64(time.Second))
		if tick <= 0 {
			tick = 100 * time.Millisecond
		}
		telemetry = services.NewTelemetry(config.Telemetry.Addr, tick, eng.Snapshot)
		if err := telemetry.Start(); err != nil {
			log.WithError(err).Error("failed to start telemetry service, continuing without it")
			telemetry = nil
		}
	}

	game := render.NewGame(config, eng, telemetry)
	if err := render.RunGame(game); err != nil {
		log.WithError(err).Error("game loop exited with error")
	}

	if telemetry != nil {
		telemetry.Stop()
	}
}
