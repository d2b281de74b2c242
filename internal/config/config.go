// Package config loads a YAML test configuration describing one run:
// a tower of cache levels, main memory, and a trace source.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yigitbektasgursoy/cache-simulator/internal/cache"
	"github.com/yigitbektasgursoy/cache-simulator/internal/errs"
	"github.com/yigitbektasgursoy/cache-simulator/internal/hierarchy"
	"github.com/yigitbektasgursoy/cache-simulator/internal/memory"
	"github.com/yigitbektasgursoy/cache-simulator/internal/obslog"
	"github.com/yigitbektasgursoy/cache-simulator/internal/replace"
	"github.com/yigitbektasgursoy/cache-simulator/internal/trace"
)

// CacheSpec is the YAML shape of one cache level.
type CacheSpec struct {
	Name            string `yaml:"name"`
	Organization    string `yaml:"organization"`
	Size            uint64 `yaml:"size"`
	BlockSize       uint64 `yaml:"blockSize"`
	Associativity   uint64 `yaml:"associativity"`
	AccessLatency   uint64 `yaml:"accessLatency"`
	WriteBack       bool   `yaml:"writeBack"`
	WriteAllocate   bool   `yaml:"writeAllocate"`
	InclusionPolicy string `yaml:"inclusionPolicy"`
	Policy          string `yaml:"policy"`
	RandomSeed      int64  `yaml:"randomSeed"`
}

// Build turns the spec into a validated cache.Config.
func (s CacheSpec) Build() (cache.Config, error) {
	cfg := cache.Config{
		Name:            s.Name,
		Organization:    cache.ParseOrganization(s.Organization),
		Size:            s.Size,
		BlockSize:       s.BlockSize,
		Associativity:   s.Associativity,
		AccessLatency:   s.AccessLatency,
		WriteBack:       s.WriteBack,
		WriteAllocate:   s.WriteAllocate,
		InclusionPolicy: cache.ParseInclusionPolicy(s.InclusionPolicy),
		Policy:          replace.ParseKind(s.Policy),
		RandomSeed:      s.RandomSeed,
	}
	if err := cfg.Validate(); err != nil {
		return cache.Config{}, err
	}
	return cfg, nil
}

// MemorySpec is the YAML shape of the main memory backing the tower.
type MemorySpec struct {
	Latency uint64 `yaml:"latency"`
}

// TraceSpec is the YAML shape of a trace source: either a file path or
// a synthetic pattern. When File is set, the synthetic fields are
// ignored.
type TraceSpec struct {
	File         string  `yaml:"file"`
	Pattern      string  `yaml:"pattern"`
	StartAddress uint64  `yaml:"startAddress"`
	EndAddress   uint64  `yaml:"endAddress"`
	NumAccesses  int     `yaml:"numAccesses"`
	ReadRatio    float64 `yaml:"readRatio"`
	Seed         int64   `yaml:"seed"`
}

// Build constructs the trace.Producer the spec describes.
func (s TraceSpec) Build() (trace.Producer, error) {
	if s.File != "" {
		return trace.NewFileProducer(s.File)
	}
	return trace.NewSyntheticProducer(trace.SyntheticSpec{
		Pattern:      trace.ParsePattern(s.Pattern),
		StartAddress: s.StartAddress,
		EndAddress:   s.EndAddress,
		NumAccesses:  s.NumAccesses,
		ReadRatio:    s.ReadRatio,
		Seed:         s.Seed,
	})
}

// TestConfig is one named run: a tower of levels closest-to-CPU first,
// the memory behind it, and the trace to replay.
type TestConfig struct {
	Name   string      `yaml:"name"`
	Levels []CacheSpec `yaml:"levels"`
	Memory MemorySpec  `yaml:"memory"`
	Trace  TraceSpec   `yaml:"trace"`
}

// Load reads and parses path, validating every level's geometry before
// returning. Any failure is wrapped into a *errs.ConfigError naming
// path.
func Load(path string) (*TestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapConfigError(path, err)
	}

	var cfg TestConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.WrapConfigError(path, err)
	}

	if len(cfg.Levels) == 0 {
		return nil, errs.NewConfigError(path, "at least one cache level is required")
	}
	if cfg.Name == "" {
		return nil, errs.NewConfigError(path, "name is required")
	}
	for _, lvl := range cfg.Levels {
		if _, err := lvl.Build(); err != nil {
			obslog.L.WithField("file", path).WithField("level", lvl.Name).Warn("invalid cache level configuration")
			return nil, errs.WrapConfigError(path, err)
		}
	}

	return &cfg, nil
}

// Build materializes the hierarchy, main memory, and trace producer
// this TestConfig describes. Levels are ordered exactly as given in
// the YAML levels list, closest-to-CPU first.
func (c *TestConfig) Build() (*hierarchy.Hierarchy, *memory.Memory, trace.Producer, error) {
	levels := make([]*cache.Level, 0, len(c.Levels))
	for _, spec := range c.Levels {
		lc, err := spec.Build()
		if err != nil {
			return nil, nil, nil, err
		}
		levels = append(levels, cache.New(lc))
	}

	h := hierarchy.New(levels)
	m := memory.New(c.Memory.Latency)

	producer, err := c.Trace.Build()
	if err != nil {
		return nil, nil, nil, err
	}

	return h, m, producer, nil
}
