// Package assets describes the game's named sprites and sounds and loads
// them asynchronously before a session can start.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breaker/internal/audio"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Sprite names the renderer looks up.
const (
	SpriteBackground = "background"
	SpriteBall       = "ball"
	SpritePlatform   = "platform"
	SpriteBlock      = "block"
)

//go:embed manifest.yaml
var defaultManifest []byte

// ErrBadAsset is returned for a manifest entry that cannot be decoded.
var ErrBadAsset = errors.New("assets: invalid asset")

// SpriteSpec is a sprite as written in the manifest: one glyph per
// animation frame and a color name.
type SpriteSpec struct {
	Frames []string `yaml:"frames"`
	Color  string   `yaml:"color"`
}

// Manifest lists every asset a session needs.
type Manifest struct {
	Sprites map[string]SpriteSpec      `yaml:"sprites"`
	Sounds  map[string]audio.SoundSpec `yaml:"sounds"`
}

// Len returns the number of assets in the manifest.
func (m Manifest) Len() int {
	return len(m.Sprites) + len(m.Sounds)
}

// DefaultManifest returns the embedded manifest.
func DefaultManifest() (Manifest, error) {
	return ParseManifest(defaultManifest)
}

// LoadManifest reads a manifest from path, or the embedded one when path
// is empty.
func LoadManifest(path string) (Manifest, error) {
	if path == "" {
		return DefaultManifest()
	}
	data, err := os.ReadFile(path) //#nosec G304 -- path is from user CLI flag
	if err != nil {
		return Manifest{}, fmt.Errorf("assets: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest YAML.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("assets: parse manifest: %w", err)
	}
	return m, nil
}

// Names returns every asset name, sprites first, each group sorted.
func (m Manifest) Names() []string {
	sprites := make([]string, 0, len(m.Sprites))
	for name := range m.Sprites {
		sprites = append(sprites, name)
	}
	sort.Strings(sprites)

	sounds := make([]string, 0, len(m.Sounds))
	for name := range m.Sounds {
		sounds = append(sounds, name)
	}
	sort.Strings(sounds)

	return append(sprites, sounds...)
}

// Sprite is a decoded sprite ready for drawing.
type Sprite struct {
	Frames []rune
	Color  core.Color
}

// Frame returns the glyph for animation frame i, wrapping around.
func (s Sprite) Frame(i int) rune {
	if len(s.Frames) == 0 {
		return ' '
	}
	if i < 0 {
		i = -i
	}
	return s.Frames[i%len(s.Frames)]
}

// DecodeSprite validates a sprite spec: every frame must be a single glyph.
func DecodeSprite(name string, spec SpriteSpec) (Sprite, error) {
	if len(spec.Frames) == 0 {
		return Sprite{}, fmt.Errorf("%w: sprite %q has no frames", ErrBadAsset, name)
	}

	sprite := Sprite{Frames: make([]rune, 0, len(spec.Frames))}
	for i, f := range spec.Frames {
		if utf8.RuneCountInString(f) != 1 {
			return Sprite{}, fmt.Errorf("%w: sprite %q frame %d must be one glyph, got %q", ErrBadAsset, name, i, f)
		}
		r, _ := utf8.DecodeRuneInString(f)
		sprite.Frames = append(sprite.Frames, r)
	}

	color, ok := core.ParseColor(spec.Color)
	if !ok {
		return Sprite{}, fmt.Errorf("%w: sprite %q has unknown color %q", ErrBadAsset, name, spec.Color)
	}
	sprite.Color = color
	return sprite, nil
}

// DecodeSprites decodes every sprite of m synchronously into a bundle
// without sounds, for hosts that only draw.
func DecodeSprites(m Manifest) (*Bundle, error) {
	b := &Bundle{Sprites: make(map[string]Sprite, len(m.Sprites))}
	for name, spec := range m.Sprites {
		sprite, err := DecodeSprite(name, spec)
		if err != nil {
			return nil, err
		}
		b.Sprites[name] = sprite
	}
	return b, nil
}
