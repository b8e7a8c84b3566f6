// Package config parses flap.toml configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/LISSConsulting/flapper/internal/link"
	"github.com/LISSConsulting/flapper/internal/toggle"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "flap.toml"

// DefaultAccentColor is the default TUI accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level flap.toml configuration.
type Config struct {
	Link          LinkConfig          `toml:"link"`
	Sleep         SleepConfig         `toml:"sleep"`
	Loop          LoopConfig          `toml:"loop"`
	Log           LogConfig           `toml:"log"`
	TUI           TUIConfig           `toml:"tui"`
	Notifications NotificationsConfig `toml:"notifications"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `toml:"-"`
}

// LinkConfig selects the interface and how it is toggled.
type LinkConfig struct {
	Interface string `toml:"interface"`
	Driver    string `toml:"driver"`  // ifconfig, ip or netlink
	Command   string `toml:"command"` // executable override for command drivers
}

// SleepConfig bounds the random wait between toggles.
type SleepConfig struct {
	MinSeconds   float64 `toml:"min_seconds"`
	MaxSeconds   float64 `toml:"max_seconds"`
	GraceSeconds float64 `toml:"grace_seconds"`
}

// LoopConfig controls loop termination.
type LoopConfig struct {
	MaxCycles         int    `toml:"max_cycles"` // 0 = unlimited
	OnDoubleInterrupt string `toml:"on_double_interrupt"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"` // empty = stderr
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
}

// NotificationsConfig controls webhook/ntfy.sh notifications.
type NotificationsConfig struct {
	URL      string `toml:"url"`
	OnToggle bool   `toml:"on_toggle"`
	OnExit   bool   `toml:"on_exit"`
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Link.Interface == "" {
		errs = append(errs, fmt.Errorf("link.interface must not be empty"))
	}
	if !slices.Contains(link.Drivers, c.Link.Driver) {
		errs = append(errs, fmt.Errorf("link.driver must be one of %s", strings.Join(link.Drivers, ", ")))
	}
	if c.Link.Command != "" && c.Link.Driver == link.DriverNetlink {
		errs = append(errs, fmt.Errorf("link.command has no effect with the netlink driver"))
	}

	if c.Sleep.MinSeconds < 0.01 {
		errs = append(errs, fmt.Errorf("sleep.min_seconds must be >= 0.01"))
	}
	if c.Sleep.MaxSeconds < c.Sleep.MinSeconds {
		errs = append(errs, fmt.Errorf("sleep.max_seconds must be >= sleep.min_seconds"))
	}
	if c.Sleep.GraceSeconds <= 0 {
		errs = append(errs, fmt.Errorf("sleep.grace_seconds must be > 0"))
	}

	if c.Loop.MaxCycles < 0 {
		errs = append(errs, fmt.Errorf("loop.max_cycles must be >= 0 (0 = unlimited)"))
	}
	if _, err := toggle.ParseDoubleInterruptAction(c.Loop.OnDoubleInterrupt); err != nil {
		errs = append(errs, fmt.Errorf("loop.on_double_interrupt must be %q or %q", toggle.ForceUp, toggle.Terminate))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q is not a valid level", c.Log.Level))
	}
	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, fmt.Errorf("log.max_size_mb must be >= 0"))
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Errorf("log.max_backups must be >= 0"))
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#7D56F4\")"))
	}

	if c.Notifications.URL != "" {
		u, parseErr := url.ParseRequestURI(c.Notifications.URL)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("notifications.url must be a valid http or https URL"))
		}
	}

	return errors.Join(errs...)
}

// Defaults returns the built-in configuration: toggle en0 with ifconfig,
// sleep 1 to 60 seconds, 0.2 second grace, force up on double interrupt.
func Defaults() Config {
	return Config{
		Link: LinkConfig{
			Interface: "en0",
			Driver:    link.DriverIfconfig,
		},
		Sleep: SleepConfig{
			MinSeconds:   1,
			MaxSeconds:   60,
			GraceSeconds: 0.2,
		},
		Loop: LoopConfig{
			MaxCycles:         0,
			OnDoubleInterrupt: string(toggle.ForceUp),
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
		},
		Notifications: NotificationsConfig{
			OnToggle: true,
			OnExit:   true,
		},
	}
}

// Load reads flap.toml from the given path. If path is empty, it walks up
// from the current working directory looking for flap.toml and falls back
// to Defaults when none exists. Unknown keys (likely typos) are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		if found == "" {
			cfg := Defaults()
			return &cfg, nil
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	return &cfg, nil
}

// findConfig walks up from the current directory looking for flap.toml.
// It returns "" without error when no file exists.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// InitFile writes a default flap.toml template to the given directory,
// toggling iface.
func InitFile(dir, iface string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}
	if iface == "" {
		iface = Defaults().Link.Interface
	}

	content := fmt.Sprintf(`# flap.toml: flapper configuration

[link]
interface = %q
driver = "ifconfig"  # ifconfig, ip or netlink (linux only)
command = ""         # executable override, e.g. "/sbin/ifconfig"

[sleep]
min_seconds = 1.0
max_seconds = 60.0
grace_seconds = 0.2  # second Ctrl+C within this window stops the loop

[loop]
max_cycles = 0                     # 0 = unlimited
on_double_interrupt = "force-up"   # force-up or terminate

[log]
level = "info"
file = ""          # empty = stderr
max_size_mb = 10
max_backups = 3

[tui]
accent_color = "#7D56F4"

[notifications]
url = ""          # ntfy.sh topic URL or any HTTP webhook (empty = disabled)
on_toggle = true  # notify on every direction change
on_exit = true    # notify when the loop ends
`, iface)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
