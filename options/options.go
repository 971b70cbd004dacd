// Package options holds the demo configuration. Every option is a flag;
// a TOML file named by -config supplies values for flags not given on the
// command line.
package options

import (
	"flag"
	"fmt"
	"os"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
)

type Options struct {
	Config         *string
	Help           *bool
	Mode           *string // "window" or "headless"
	Width          *int
	Height         *int
	Frames         *int
	FPS            *int
	Filter         *string // "linear" or "nearest"
	Image          *string
	VertexShader   *string
	FragmentShader *string
	Watch          *bool
	OutputFile     *string
	Codec          *string
	FFmpegPath     *string
	Screenshot     *string
}

// Register defines the option flags on fs.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Config:         fs.String("config", "", "TOML file with option defaults"),
		Help:           fs.Bool("help", false, "Show help message"),
		Mode:           fs.String("mode", "window", "Context to render into: window or headless"),
		Width:          fs.Int("width", 640, "Width of the surface"),
		Height:         fs.Int("height", 480, "Height of the surface"),
		Frames:         fs.Int("frames", 0, "Frames to render, 0 runs until the window closes (one frame headless)"),
		FPS:            fs.Int("fps", 60, "Frames per second for recording"),
		Filter:         fs.String("filter", "linear", "Texture filtering: linear or nearest"),
		Image:          fs.String("image", "", "PNG, JPEG, BMP or WebP file for the sprite texture (checkerboard if empty)"),
		VertexShader:   fs.String("vs", "", "WebGL2 vertex shader file (built-in sprite shader if empty)"),
		FragmentShader: fs.String("fs", "", "WebGL2 fragment shader file (built-in sprite shader if empty)"),
		Watch:          fs.Bool("watch", false, "Reload shader files when they change"),
		OutputFile:     fs.String("output", "", "Record frames to this video file"),
		Codec:          fs.String("codec", "", "Video codec for recording (platform default if empty)"),
		FFmpegPath:     fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Screenshot:     fs.String("screenshot", "", "Write the last frame to this PNG file when -frames is set"),
	}
}

// Parse registers the options on fs, parses args and applies the config
// file if one was named. Command line values win over file values.
func Parse(fs *flag.FlagSet, args []string) (*Options, error) {
	o := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *o.Config != "" {
		values, err := Load(*o.Config)
		if err != nil {
			return nil, err
		}
		if err := Apply(fs, values); err != nil {
			return nil, fmt.Errorf("config %s: %w", *o.Config, err)
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Load reads a flat TOML document of option values keyed by flag name.
func Load(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	values := make(map[string]interface{})
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return values, nil
}

// Apply sets every flag in values that was not set on the command line.
func Apply(fs *flag.FlagSet, values map[string]interface{}) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == "config" {
			return fmt.Errorf("option %q cannot be set from a config file", k)
		}
		if fs.Lookup(k) == nil {
			return fmt.Errorf("unknown option %q", k)
		}
		if set[k] {
			continue
		}
		var s string
		switch v := values[k].(type) {
		case string:
			s = v
		case bool, int64, float64:
			s = fmt.Sprint(v)
		default:
			return fmt.Errorf("option %q: unsupported value type %T", k, v)
		}
		if err := fs.Set(k, s); err != nil {
			return fmt.Errorf("option %q: %w", k, err)
		}
	}
	return nil
}

// Validate checks values the flag package cannot.
func (o *Options) Validate() error {
	switch *o.Mode {
	case "window", "headless":
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	switch *o.Filter {
	case "linear", "nearest":
	default:
		return fmt.Errorf("unknown filter %q", *o.Filter)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", *o.FPS)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", *o.Frames)
	}
	return nil
}
