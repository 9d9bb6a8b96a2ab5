package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type ApplicationConfig struct {
	Name        string `toml:"name"`
	StartPosX   uint32 `toml:"pos_x"`
	StartPosY   uint32 `toml:"pos_y"`
	StartWidth  uint32 `toml:"width"`
	StartHeight uint32 `toml:"height"`
}

type RendererConfig struct {
	// One of "opengl", "vulkan", "metal", "directx".
	API         string     `toml:"api"`
	VSync       bool       `toml:"vsync"`
	CheckErrors bool       `toml:"check_errors"`
	ClearColour [4]float32 `toml:"clear_colour"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	ShaderDir string `toml:"shader_dir"`
	HotReload bool   `toml:"hot_reload"`
}

// Config is the on-disk TOML configuration of an application using prism.
type Config struct {
	Application ApplicationConfig `toml:"application"`
	Renderer    RendererConfig    `toml:"renderer"`
	Log         LogConfig         `toml:"log"`
	Assets      AssetsConfig      `toml:"assets"`
}

func DefaultConfig() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:        "Prism",
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  1280,
			StartHeight: 720,
		},
		Renderer: RendererConfig{
			API:         "opengl",
			VSync:       true,
			CheckErrors: true,
			ClearColour: [4]float32{0.1, 0.1, 0.12, 1.0},
		},
		Log: LogConfig{
			Level: "info",
		},
		Assets: AssetsConfig{
			ShaderDir: "assets/shaders",
		},
	}
}

// ParseConfig decodes data on top of DefaultConfig, so missing keys keep their defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func (c *Config) Validate() error {
	if c.Application.StartWidth == 0 || c.Application.StartHeight == 0 {
		return fmt.Errorf("%w: window size must be non zero, got %dx%d", ErrInvalidConfig, c.Application.StartWidth, c.Application.StartHeight)
	}
	switch strings.ToLower(c.Renderer.API) {
	case "opengl", "vulkan", "metal", "directx":
	default:
		return fmt.Errorf("%w: unknown renderer api %q", ErrInvalidConfig, c.Renderer.API)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
