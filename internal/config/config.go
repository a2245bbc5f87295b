// Package config loads the wiresketch configuration file.
//
// The file is TOML and every key is optional:
//
//	[grid]
//	image_size = 416.0
//	subdivisions = 13
//	confidence = 0.5
//
//	[merge]
//	enabled = false
//	iou_threshold = 0.2
//	scan = "legacy"          # or "all-pairs"
//
//	[augment]
//	rotation_probability = 1.0
//	zoom_probability = 1.0
//	flip_vertical_probability = 0.2
//	flip_horizontal_probability = 0.2
//	rotation_range = [-0.26, 0.26]
//	zoom_range = [0.99, 1.01]
//	seed = 42
//	size = 416
//
//	[dataset]
//	image_exts = [".png", ".jpg"]
//	label_ext = ".txt"
//	crop_size = 50
//	max_attempts = 0         # 0: ten draws per requested sample
//
//	[cache]
//	backend = "file"         # "file", "redis" or "none"
//	redis_url = "redis://localhost:6379/0"
//	prefix = ""
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override file values.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/dataset"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/pipeline"
)

const appName = "wiresketch"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Grid    Grid    `toml:"grid"`
	Merge   Merge   `toml:"merge"`
	Augment Augment `toml:"augment"`
	Dataset Dataset `toml:"dataset"`
	Cache   Cache   `toml:"cache"`
	Server  Server  `toml:"server"`
}

type Grid struct {
	ImageSize    float64 `toml:"image_size"`
	Subdivisions int     `toml:"subdivisions"`
	Confidence   float64 `toml:"confidence"`
}

type Merge struct {
	Enabled      bool    `toml:"enabled"`
	IOUThreshold float64 `toml:"iou_threshold"`
	Scan         string  `toml:"scan"`
}

type Augment struct {
	RotationProbability       float64    `toml:"rotation_probability"`
	ZoomProbability           float64    `toml:"zoom_probability"`
	FlipVerticalProbability   float64    `toml:"flip_vertical_probability"`
	FlipHorizontalProbability float64    `toml:"flip_horizontal_probability"`
	RotationRange             [2]float64 `toml:"rotation_range"`
	ZoomRange                 [2]float64 `toml:"zoom_range"`
	Seed                      uint64     `toml:"seed"`
	Size                      int        `toml:"size"`
}

type Dataset struct {
	ImageExts   []string `toml:"image_exts"`
	LabelExt    string   `toml:"label_ext"`
	CropSize    int      `toml:"crop_size"`
	MaxAttempts int      `toml:"max_attempts"`
	Color       bool     `toml:"color"` // keep source colour instead of grayscale
}

type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"` // file backend; empty uses the user cache dir
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := dataset.DefaultPolicy()
	return Config{
		Grid: Grid{
			ImageSize:    pipeline.DefaultImageSize,
			Subdivisions: pipeline.DefaultSubdivisions,
			Confidence:   pipeline.DefaultConfidence,
		},
		Merge: Merge{
			IOUThreshold: pipeline.DefaultIOUThreshold,
			Scan:         box.ScanLegacy.String(),
		},
		Augment: Augment{
			RotationProbability:       p.RotationProbability,
			ZoomProbability:           p.ZoomProbability,
			FlipVerticalProbability:   p.FlipVerticalProbability,
			FlipHorizontalProbability: p.FlipHorizontalProbability,
			RotationRange:             p.RotationRange,
			ZoomRange:                 p.ZoomRange,
			Seed:                      dataset.DefaultSeed,
			Size:                      dataset.DefaultImageSize,
		},
		Dataset: Dataset{
			ImageExts: append([]string(nil), dataset.DefaultImageExts...),
			LabelExt:  dataset.DefaultLabelExt,
			CropSize:  dataset.DefaultCropSize,
		},
		Cache: Cache{
			Backend: BackendFile,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/wiresketch/config.toml, falling back
// to ~/.config/wiresketch/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults. Unknown keys are rejected so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidFormat, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errs.Wrap(errs.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks values that the consumers would otherwise reject late.
func (c Config) Validate() error {
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errs.New(errs.ErrCodeInvalidInput, "cache backend redis needs redis_url")
		}
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	return nil
}

// PipelineOptions returns the pipeline settings of c.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		ImageWidth:   c.Grid.ImageSize,
		ImageHeight:  c.Grid.ImageSize,
		Subdivisions: c.Grid.Subdivisions,
		Confidence:   c.Grid.Confidence,
		Merge:        c.Merge.Enabled,
		IOUThreshold: c.Merge.IOUThreshold,
		MergeScan:    c.Merge.Scan,
	}
}

// Policy returns the augmentation policy of c.
func (c Config) Policy() dataset.Policy {
	a := c.Augment
	return dataset.Policy{
		RotationProbability:       a.RotationProbability,
		ZoomProbability:           a.ZoomProbability,
		FlipVerticalProbability:   a.FlipVerticalProbability,
		FlipHorizontalProbability: a.FlipHorizontalProbability,
		RotationRange:             a.RotationRange,
		ZoomRange:                 a.ZoomRange,
	}
}

// DatasetOptions returns the generator settings of c.
func (c Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		ImageExts:   c.Dataset.ImageExts,
		LabelExt:    c.Dataset.LabelExt,
		Seed:        c.Augment.Seed,
		MaxAttempts: c.Dataset.MaxAttempts,
		Color:       c.Dataset.Color,
	}
}
