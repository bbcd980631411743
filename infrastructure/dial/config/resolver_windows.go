//go:build windows

package config

import (
	"os"
	"path/filepath"
)

type DefaultResolver struct{}

func NewDefaultResolver() Resolver {
	return DefaultResolver{}
}

func (r DefaultResolver) Resolve() (string, error) {
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData` // fallback
	}
	return filepath.Join(programData, "racetcp", "config.json"), nil
}
