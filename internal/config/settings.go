package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trim21/errgo"

	"github.com/copybench/copybench/internal/copier"
	"github.com/copybench/copybench/internal/utils"
)

// Settings holds the benchmark inputs. Only file names and block sizes are
// configurable; everything else about a run is fixed.
type Settings struct {
	// Input is the file every strategy reads.
	Input string `mapstructure:"input"`
	// SearchDirs are tried in order when a relative Input is not found in
	// the working directory.
	SearchDirs []string `mapstructure:"search-dirs"`

	OutputDir string `mapstructure:"output-dir"`
	// OutputPattern names the output of the n-th strategy (1-based) when
	// Outputs has no entry for it.
	OutputPattern string   `mapstructure:"output-pattern"`
	Outputs       []string `mapstructure:"outputs"`

	BlockSizes []string `mapstructure:"block-sizes"`

	LogLevel string `mapstructure:"log-level"`
}

const (
	DefaultInput         = "Big-Alice-in-Wonderland.txt"
	DefaultOutputPattern = "filecopy%d.txt"
)

// DefaultBlockSizes are the block sizes benchmarked when none are given.
var DefaultBlockSizes = []string{"1KB", "4KB", "64KB"}

// DefaultSettings returns the hardcoded benchmark configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Input:         DefaultInput,
		SearchDirs:    []string{"src", "resources"},
		OutputDir:     defaultOutputDir(),
		OutputPattern: DefaultOutputPattern,
		BlockSizes:    append([]string(nil), DefaultBlockSizes...),
		LogLevel:      "info",
	}
}

func defaultOutputDir() string {
	if info, err := os.Stat("/tmp"); err == nil && info.IsDir() {
		return "/tmp"
	}
	return os.TempDir()
}

// LoadSettings merges, lowest priority first: defaults, the settings file,
// COPYBENCH_* environment variables and changed flags.
//
// path may be empty, in which case GetSettingsPath is used and a missing
// file is not an error. flags may be nil.
func LoadSettings(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	d := DefaultSettings()
	v.SetDefault("input", d.Input)
	v.SetDefault("search-dirs", d.SearchDirs)
	v.SetDefault("output-dir", d.OutputDir)
	v.SetDefault("output-pattern", d.OutputPattern)
	v.SetDefault("outputs", []string{})
	v.SetDefault("block-sizes", d.BlockSizes)
	v.SetDefault("log-level", d.LogLevel)

	v.SetEnvPrefix("COPYBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errgo.Wrap(err, "failed to bind flags")
		}
	}

	explicit := path != ""
	if !explicit {
		path = GetSettingsPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errgo.Wrap(err, "failed to parse settings file")
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, errgo.Wrap(err, "failed to read settings file")
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errgo.Wrap(err, "failed to decode settings")
	}
	s.SearchDirs = lo.Compact(splitList(s.SearchDirs))
	// Blank outputs keep their position and fall back to OutputPattern.
	s.Outputs = splitList(s.Outputs)
	s.BlockSizes = lo.Compact(splitList(s.BlockSizes))

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// splitList flattens comma separated entries, which is how lists arrive
// from environment variables.
func splitList(in []string) []string {
	parts := lo.FlatMap(in, func(item string, _ int) []string {
		return strings.Split(item, ",")
	})
	return lo.Map(parts, func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
}

// Validate checks that the settings describe a runnable benchmark.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Input) == "" {
		return fmt.Errorf("input file name is empty")
	}
	if s.OutputDir == "" {
		return fmt.Errorf("output directory is empty")
	}
	if !strings.Contains(s.OutputPattern, "%d") {
		return fmt.Errorf("output pattern %q must contain %%d", s.OutputPattern)
	}
	if _, err := s.BlockSizeBytes(); err != nil {
		return err
	}
	return nil
}

// BlockSizeBytes returns the configured block sizes in bytes.
func (s *Settings) BlockSizeBytes() ([]int, error) {
	return utils.ParseSizes(s.BlockSizes, copier.MaxBlockSize)
}

// OutputPath returns the output file of the strategy at index i (0-based).
func (s *Settings) OutputPath(i int) string {
	name := ""
	if i < len(s.Outputs) {
		name = s.Outputs[i]
	}
	if name == "" {
		name = fmt.Sprintf(s.OutputPattern, i+1)
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.OutputDir, name)
}
