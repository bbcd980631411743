package config

import (
	"fmt"
	"time"

	applicationdial "racetcp/application/dial"
)

// Configuration is the demo CLI's optional JSON defaults file. Every field is
// optional; zero values mean "use the engine's own default". Targets is read
// and validated, but cmd/racedial takes its targets from the command line
// only.
type Configuration struct {
	DelayMs    *int     `json:"delayMs"`
	Interleave *int     `json:"interleave"`
	AllErrors  bool     `json:"allErrors"`
	Targets    []string `json:"targets"`
}

func (c *Configuration) Validate() error {
	if c.DelayMs != nil && *c.DelayMs < 0 {
		return fmt.Errorf("delayMs must be >= 0, got %d", *c.DelayMs)
	}
	if c.Interleave != nil && *c.Interleave < 0 {
		return fmt.Errorf("interleave must be >= 0, got %d", *c.Interleave)
	}
	for _, t := range c.Targets {
		if t == "" {
			return fmt.Errorf("targets entries must not be empty")
		}
	}
	return nil
}

// Options builds the applicationdial.Options defaults this file describes.
// Target resolution and SocketFactory/Logger wiring are the caller's job.
func (c *Configuration) Options() applicationdial.Options {
	var opts applicationdial.Options
	if c.DelayMs != nil {
		d := time.Duration(*c.DelayMs) * time.Millisecond
		opts.HappyEyeballsDelay = &d
	}
	if c.Interleave != nil {
		interleave := *c.Interleave
		opts.Interleave = &interleave
	}
	opts.AllErrors = c.AllErrors
	return opts
}
