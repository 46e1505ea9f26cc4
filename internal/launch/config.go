package launch

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/gcfg.v1"

	"github.com/olivierh59500/gravity-grid-go/sim"
)

// Usage lists the positional arguments in order.
const Usage = "'windowWidth' 'windowHeight' 'spawnLimit' 'minParticleRadius' 'maxParticleRadius' 'gravity'"

// Config holds everything needed to start a run. The gcfg tags name the
// variables of the [simulation] section of a config file.
type Config struct {
	WindowWidth  int     `gcfg:"window-width"`
	WindowHeight int     `gcfg:"window-height"`
	SpawnLimit   int     `gcfg:"spawn-limit"`
	MinRadius    float64 `gcfg:"min-radius"`
	MaxRadius    float64 `gcfg:"max-radius"`
	Gravity      float64 `gcfg:"gravity"`

	Interval   float64 `gcfg:"interval"` // Seconds between two particle activations
	Seed       int64   `gcfg:"seed"`     // 0 picks a time based seed
	BruteForce bool    `gcfg:"brute-force"`

	Headless bool    `gcfg:"headless"`
	Frames   int     `gcfg:"frames"`
	DT       float64 `gcfg:"dt"`
}

type configFile struct {
	Simulation Config
}

func DefaultConfig() Config {
	return Config{
		Interval: sim.DefaultInterval,
		Frames:   600,
		DT:       1.0 / 60,
	}
}

// LoadFile reads the [simulation] section of an INI style file into cfg.
// Variables missing from the file keep their current value.
func LoadFile(path string, cfg *Config) error {
	file := configFile{Simulation: *cfg}
	if err := gcfg.ReadFileInto(&file, path); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	*cfg = file.Simulation
	return nil
}

// ParseArgs reads the six positional arguments into cfg, echoing each one to
// out as it goes. The first three are integers, the rest floats.
func ParseArgs(args []string, cfg *Config, out io.Writer) error {
	if len(args) != 6 {
		return fmt.Errorf("you must provide following arguments: %s", Usage)
	}

	ints := []*int{&cfg.WindowWidth, &cfg.WindowHeight, &cfg.SpawnLimit}
	floats := []*float64{&cfg.MinRadius, &cfg.MaxRadius, &cfg.Gravity}
	for i, arg := range args {
		fmt.Fprintf(out, "Argument %d: %s\n", i+1, arg)

		if i < len(ints) {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return argError(i+1, err)
			}
			fmt.Fprintf(out, "Integer argument: %d\n", v)
			*ints[i] = v
			continue
		}

		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return argError(i+1, err)
		}
		fmt.Fprintf(out, "Float argument: %g\n", v)
		*floats[i-len(ints)] = v
	}
	return nil
}

func argError(n int, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("argument %d is out of range: %w", n, err)
	}
	return fmt.Errorf("argument %d is of wrong type: %w", n, err)
}

// Validate checks the values the simulation cannot start with. Grid sizing is
// left to sim.New.
func (c *Config) Validate() error {
	if c.WindowWidth < 1 || c.WindowHeight < 1 {
		return fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.SpawnLimit < 1 {
		return fmt.Errorf("spawn limit must be at least 1, got %d", c.SpawnLimit)
	}
	if !(c.MinRadius > 0) {
		return fmt.Errorf("min particle radius must be positive, got %g", c.MinRadius)
	}
	if c.MaxRadius < c.MinRadius {
		return fmt.Errorf("max particle radius %g is below min radius %g", c.MaxRadius, c.MinRadius)
	}
	if !(c.Interval > 0) {
		return fmt.Errorf("activation interval must be positive, got %g", c.Interval)
	}
	if c.Headless {
		if c.Frames < 1 {
			return fmt.Errorf("headless run needs at least 1 frame, got %d", c.Frames)
		}
		if !(c.DT > 0) {
			return fmt.Errorf("frame time must be positive, got %g", c.DT)
		}
	}
	return nil
}

// Options converts the config for sim.New.
func (c *Config) Options() sim.Options {
	mode := sim.GridBroadPhase
	if c.BruteForce {
		mode = sim.BruteForce
	}
	return sim.Options{
		Width:      float64(c.WindowWidth),
		Height:     float64(c.WindowHeight),
		MaxRadius:  c.MaxRadius,
		Gravity:    c.Gravity,
		Interval:   c.Interval,
		BroadPhase: mode,
	}
}
