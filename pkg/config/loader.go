package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "GPM_"

// LoadOptions selects the files Load reads
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist when set.
	// When empty the default file in the config dir is used if present.
	ConfigFile string
}

// Load builds the run configuration from defaults, the config file and
// the environment.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config.loader")
	p := paths.New()
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file
	configFile := opts.ConfigFile
	required := configFile != ""
	if !required {
		configFile = p.ConfigFile()
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), parserFor(configFile)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configFile)
		}
		logger.Debug().Str("path", configFile).Msg("Loaded config file")
	} else if required {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", configFile)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 5. Post-process
	if err := postProcess(&cfg, p); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("destination", cfg.Destination).
		Strs("devRoots", cfg.DevRoots).
		Str("symlinks", string(cfg.Symlinks)).
		Msg("Configuration loaded")

	return &cfg, nil
}

// envKey maps GPM_ASSUME_YES to assume_yes and GPM_PLATFORM__VERSION to
// platform.version
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func defaultsMap() map[string]interface{} {
	d := Defaults()
	return map[string]interface{}{
		"destination":   d.Destination,
		"dev_roots":     []interface{}{},
		"dev_config":    d.DevConfig,
		"assume_yes":    d.AssumeYes,
		"force_refresh": d.ForceRefresh,
		"symlinks":      string(d.Symlinks),
		"index":         d.Index,
		"cache_dir":     d.CacheDir,
		"platform": map[string]interface{}{
			"name":    d.Platform.Name,
			"version": d.Platform.Version,
		},
	}
}

func postProcess(cfg *Config, p *paths.Paths) error {
	dest, err := filepath.Abs(paths.ExpandHome(cfg.Destination))
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid destination %s", cfg.Destination)
	}
	cfg.Destination = dest

	if cfg.CacheDir == "" {
		cfg.CacheDir = p.CacheDir()
	}
	cfg.CacheDir = paths.ExpandHome(cfg.CacheDir)

	if cfg.Index != "" && !isURL(cfg.Index) {
		cfg.Index = paths.ExpandHome(cfg.Index)
	}

	roots := make([]string, 0, len(cfg.DevRoots))
	for _, r := range cfg.DevRoots {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, paths.ExpandHome(r))
		}
	}

	if len(roots) == 0 {
		devConfig := cfg.DevConfig
		if devConfig == "" {
			devConfig = p.DevConfigFile()
		}
		fromFile, err := LoadDevRoots(paths.ExpandHome(devConfig))
		if err != nil {
			return err
		}
		roots = fromFile
	}
	cfg.DevRoots = roots

	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
