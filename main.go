package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/gravity-grid-go/internal/launch"
	"github.com/olivierh59500/gravity-grid-go/sim"
)

func main() {
	cfg := launch.DefaultConfig()
	configPath := flag.String("config", "", "INI file with a [simulation] section")
	flag.Float64Var(&cfg.Interval, "interval", cfg.Interval, "seconds between two particle activations")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	flag.BoolVar(&cfg.BruteForce, "bruteforce", cfg.BruteForce, "check every particle pair instead of using the grid")
	flag.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run without a window")
	flag.IntVar(&cfg.Frames, "frames", cfg.Frames, "frames to run in headless mode")
	flag.Float64Var(&cfg.DT, "dt", cfg.DT, "seconds per frame in headless mode")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] %s\n\n", os.Args[0], launch.Usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *configPath != "" {
		if err := launch.LoadFile(*configPath, &cfg); err != nil {
			log.Fatal(err)
		}
		// Flags given on the command line win over the file
		flag.CommandLine.Parse(os.Args[1:])
	}
	if *configPath == "" || flag.NArg() > 0 {
		if err := launch.ParseArgs(flag.Args(), &cfg, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Application is running!")

	s, err := sim.New(cfg.Options(), launch.NewSpawner(cfg).Descriptors())
	if err != nil {
		log.Fatalf("Cannot create simulation: %v", err)
	}

	if cfg.Headless {
		rep := launch.RunHeadless(s, cfg.Frames, cfg.DT, 60, log.Default())
		log.Printf("done: %d frames, active %d/%d, %d contacts", rep.Frames, rep.ActiveCount, rep.Total, rep.Contacts)
		fmt.Println(rep.ActiveCount)
		return
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Simulation window")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(NewGame(s, cfg.WindowWidth, cfg.WindowHeight, os.Stdout)); err != nil {
		log.Fatal(err)
	}
}
