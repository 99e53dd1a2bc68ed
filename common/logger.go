package common

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func SetupLogger(config *Config) {
	switch config.Log.Level {
	case "TRACE":
		log.SetLevel(log.TraceLevel)
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&log.TextFormatter{
		ForceColors:            true,
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05",
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
}

// LogStartupSummary reports the scenario the engine was configured with,
// at Info level, so a run's ball count and container size always land in
// the log even when per-collision Debug/Trace logging is off.
func LogStartupSummary(config *Config) {
	log.WithFields(log.Fields{
		"ball_count":       len(config.Simulation.Balls),
		"container_radius": config.Simulation.ContainerRadius,
		"telemetry_addr":   config.Telemetry.Addr,
	}).Info("simulation configured")
}
