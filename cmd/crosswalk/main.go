package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lixenwraith/crosswalk/config"
	"github.com/lixenwraith/crosswalk/core"
	"github.com/lixenwraith/crosswalk/scenario"
	"github.com/lixenwraith/crosswalk/street"
)

var (
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/crosswalk.log")
	seedFlag     = flag.Int64("seed", 0, "Random seed; 0 keeps CROSSWALK_SEED or the default")
	headlessFlag = flag.Bool("headless", false, "Run the scripted walkthrough without a terminal")
	durationFlag = flag.Duration("duration", 3*time.Minute, "Scene time limit for the headless walkthrough")
	audioFlag    = flag.Bool("audio", false, "Play sound through the default output device")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()
	os.Exit(run())
}

func run() int {
	session := scenario.NewSession()
	cfg, cfgErr := config.LoadFromEnv()

	logFile := setupLogging(*debugFlag, cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}
	log.SetPrefix("[" + session.Short() + "] ")

	if cfgErr != nil {
		log.Printf("[CONFIG] %v, using defaults", cfgErr)
		fmt.Fprintf(os.Stderr, "Config: %v (using defaults)\n", cfgErr)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	sources, closeAudio := setupAudio(*audioFlag, cfg.Volume)
	defer closeAudio()

	scene, err := street.Build(cfg, street.Options{Sources: sources, Session: session})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build scene: %v\n", err)
		return 1
	}
	defer scene.World.RunSafe(scene.Stop)

	if *headlessFlag {
		return runHeadless(scene, *durationFlag, *audioFlag, os.Stdout)
	}
	if err := runTUI(scene); err != nil {
		fmt.Fprintf(os.Stderr, "Terminal: %v\n", err)
		return 1
	}
	return 0
}
