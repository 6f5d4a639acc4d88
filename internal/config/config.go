package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "flowstate.db"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	NextTab    string `toml:"next_tab"`
	PrevTab    string `toml:"prev_tab"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Left       string `toml:"left"`
	Right      string `toml:"right"`
	Add        string `toml:"add"`
	Delete     string `toml:"delete"`
	Toggle     string `toml:"toggle"`
	Grab       string `toml:"grab"`
	Edit       string `toml:"edit"`
	Rename     string `toml:"rename"`
	Archive    string `toml:"archive"`
	Restore    string `toml:"restore"`
	ShowHidden string `toml:"show_hidden"`
	Clear      string `toml:"clear"`
	Filter     string `toml:"filter"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
}

type Config struct {
	DBPath  string `toml:"db_path"`
	LogPath string `toml:"log_path"`
	Keys    Keymap `toml:"keys"`
}

// ResolveConfigPath places the config next to the data under the user config
// dir, falling back to the working directory when the platform has none.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "flowstate", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing one with defaults first if
// it does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(path)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath(path)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultDBPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), DefaultDBName)
}

func defaultConfig(configPath string) Config {
	return Config{
		DBPath: defaultDBPath(configPath),
		Keys: Keymap{
			Quit:       "q",
			NextTab:    "tab",
			PrevTab:    "shift+tab",
			Up:         "k",
			Down:       "j",
			Left:       "h",
			Right:      "l",
			Add:        "a",
			Delete:     "d",
			Toggle:     " ",
			Grab:       "g",
			Edit:       "e",
			Rename:     "r",
			Archive:    "x",
			Restore:    "u",
			ShowHidden: "v",
			Clear:      "c",
			Filter:     "f",
			Confirm:    "enter",
			Cancel:     "esc",
		},
	}
}
