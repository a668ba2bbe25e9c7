package canopy

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Theme is the value bag overlays and windows read their look and timing
// from. The core reads it but never computes it.
type Theme struct {
	WindowColor   Color `yaml:"window_color"`
	TitleColor    Color `yaml:"title_color"`
	GripColor     Color `yaml:"grip_color"`
	OverlayColor  Color `yaml:"overlay_color"`
	ViewportColor Color `yaml:"viewport_color"`

	TitleHeight float64 `yaml:"title_height"`
	GripSize    float64 `yaml:"grip_size"`

	// Fade timing for Overlay.Show and Hide, in seconds.
	FadeDuration float64 `yaml:"fade_duration"`
	FadeEasing   string  `yaml:"fade_easing"`
	// OverlayOpacity is the alpha a fully shown overlay settles at.
	OverlayOpacity float64 `yaml:"overlay_opacity"`

	WindowMinSize Vec2 `yaml:"window_min_size"`
	WindowMaxSize Vec2 `yaml:"window_max_size"`

	Spacing     float64 `yaml:"spacing"`
	Padding     Insets  `yaml:"padding"`
	ScrollSpeed float64 `yaml:"scroll_speed"` // pixels per wheel notch
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		WindowColor:    Color{0.12, 0.13, 0.16, 1},
		TitleColor:     Color{0.22, 0.25, 0.32, 1},
		GripColor:      Color{0.45, 0.48, 0.55, 1},
		OverlayColor:   Color{0, 0, 0, 0.6},
		ViewportColor:  ColorTransparent,
		TitleHeight:    24,
		GripSize:       12,
		FadeDuration:   0.2,
		FadeEasing:     "OutCubic",
		OverlayOpacity: 1,
		WindowMinSize:  Vec2{120, 80},
		WindowMaxSize:  Vec2{4096, 4096},
		Spacing:        4,
		Padding:        Insets{6, 6, 6, 6},
		ScrollSpeed:    24,
	}
}

// LoadTheme parses YAML (or JSON) on top of DefaultTheme, so a document only
// needs the keys it overrides. The result is validated; failures wrap
// ErrInvalidTheme.
func LoadTheme(data []byte) (Theme, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("%w: %w", ErrInvalidTheme, err)
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadThemeFile reads and parses a theme file.
func LoadThemeFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme: %w", err)
	}
	return LoadTheme(data)
}

// Validate reports the first out-of-range value.
func (t Theme) Validate() error {
	switch {
	case t.FadeDuration < 0:
		return fmt.Errorf("%w: fade_duration %v is negative", ErrInvalidTheme, t.FadeDuration)
	case t.OverlayOpacity < 0 || t.OverlayOpacity > 1:
		return fmt.Errorf("%w: overlay_opacity %v outside [0, 1]", ErrInvalidTheme, t.OverlayOpacity)
	case t.TitleHeight < 0 || t.GripSize < 0:
		return fmt.Errorf("%w: title_height and grip_size must not be negative", ErrInvalidTheme)
	case t.WindowMinSize.X < 0 || t.WindowMinSize.Y < 0:
		return fmt.Errorf("%w: window_min_size %v is negative", ErrInvalidTheme, t.WindowMinSize)
	case t.WindowMinSize.X > t.WindowMaxSize.X || t.WindowMinSize.Y > t.WindowMaxSize.Y:
		return fmt.Errorf("%w: window_min_size %v exceeds window_max_size %v",
			ErrInvalidTheme, t.WindowMinSize, t.WindowMaxSize)
	}
	if _, ok := easings[t.FadeEasing]; !ok && t.FadeEasing != "" {
		return fmt.Errorf("%w: unknown fade_easing %q", ErrInvalidTheme, t.FadeEasing)
	}
	return nil
}

// FadeCurve returns the easing function named by FadeEasing. An empty or
// unknown name falls back to ease.Linear.
func (t Theme) FadeCurve() ease.TweenFunc {
	return EasingByName(t.FadeEasing)
}

var easings = map[string]ease.TweenFunc{
	"Linear":       ease.Linear,
	"InQuad":       ease.InQuad,
	"OutQuad":      ease.OutQuad,
	"InOutQuad":    ease.InOutQuad,
	"InCubic":      ease.InCubic,
	"OutCubic":     ease.OutCubic,
	"InOutCubic":   ease.InOutCubic,
	"InSine":       ease.InSine,
	"OutSine":      ease.OutSine,
	"InOutSine":    ease.InOutSine,
	"InExpo":       ease.InExpo,
	"OutExpo":      ease.OutExpo,
	"InBack":       ease.InBack,
	"OutBack":      ease.OutBack,
	"InElastic":    ease.InElastic,
	"OutElastic":   ease.OutElastic,
	"InOutElastic": ease.InOutElastic,
	"OutBounce":    ease.OutBounce,
	"InBounce":     ease.InBounce,
}

// EasingByName resolves a curve name such as "OutCubic". Unknown names log
// and return ease.Linear.
func EasingByName(name string) ease.TweenFunc {
	if name == "" {
		return ease.Linear
	}
	if fn, ok := easings[name]; ok {
		return fn
	}
	logWarnf("EasingByName", "unknown easing %q, using Linear", name)
	return ease.Linear
}

// UnmarshalYAML accepts "#rrggbb", "#rrggbbaa" or a sequence of three or
// four floats in [0, 1].
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := parseHexColor(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var parts []float64
		if err := value.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("line %d: color needs 3 or 4 components, got %d", value.Line, len(parts))
		}
		*c = Color{parts[0], parts[1], parts[2], 1}
		if len(parts) == 4 {
			c.A = parts[3]
		}
		return nil
	}
	return fmt.Errorf("line %d: color must be a hex string or a list", value.Line)
}

func parseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
