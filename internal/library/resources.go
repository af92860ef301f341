package library

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	"git.home.luguber.info/inful/plantuml-generator/internal/icon"
	"git.home.luguber.info/inful/plantuml-generator/internal/logfields"
	"git.home.luguber.info/inful/plantuml-generator/internal/pipeline"
	"git.home.luguber.info/inful/plantuml-generator/internal/plantuml"
)

// Converter renders a vector image to a raster one at a height.
type Converter interface {
	Convert(ctx context.Context, src, dst string, height int) error
}

// SpriteEncoder turns an image into a PlantUML sprite definition.
type SpriteEncoder interface {
	EncodeSprite(ctx context.Context, path string) ([]byte, error)
}

var (
	_ Converter     = (*plantuml.Inkscape)(nil)
	_ SpriteEncoder = (*plantuml.Client)(nil)
)

// itemIconTask renders the icon of an item from its source image.
type itemIconTask struct {
	pipeline.NopTask
	urn       string
	src       string
	dest      string
	height    int
	converter Converter
}

func (t *itemIconTask) Identifier() string { return taskID(t.urn, kindItemIcon) }

func (t *itemIconTask) ResourceGroup() pipeline.ResourceGroup { return pipeline.GroupItemIcon }

func (t *itemIconTask) Cleanup(scopes pipeline.Scopes) error {
	if !scopes.Includes(config.CleanupItemIcon) {
		return nil
	}
	return removeFile(t.dest)
}

func (t *itemIconTask) CreateResources(ctx context.Context) error {
	if exists(t.dest) {
		return nil
	}
	if !exists(t.src) {
		return fmt.Errorf("icon source %s does not exist", t.src)
	}
	if err := ensureParent(t.dest); err != nil {
		return err
	}
	if icon.IsVector(t.src) {
		slog.Debug("Converting vector icon", logfields.URN(t.urn), logfields.File(t.src), logfields.Path(t.dest))
		return t.converter.Convert(ctx, t.src, t.dest, t.height)
	}
	slog.Debug("Resizing icon", logfields.URN(t.urn), logfields.File(t.src), logfields.Path(t.dest))
	return icon.Resize(t.src, t.dest, t.height)
}

// spriteIconTask resizes the item icon to a sprite size, in the cache.
type spriteIconTask struct {
	pipeline.NopTask
	urn    string
	size   string
	src    string
	dest   string
	height int
}

func (t *spriteIconTask) Identifier() string { return taskID(t.urn, kindSpriteIcon, t.size) }

func (t *spriteIconTask) ResourceGroup() pipeline.ResourceGroup { return pipeline.GroupSpriteIcon }

func (t *spriteIconTask) Cleanup(scopes pipeline.Scopes) error {
	if !scopes.Includes(config.CleanupSpriteIcon) {
		return nil
	}
	return removeFile(t.dest)
}

func (t *spriteIconTask) CreateResources(context.Context) error {
	if exists(t.dest) {
		return nil
	}
	return icon.Resize(t.src, t.dest, t.height)
}

// spriteValueTask encodes a sprite icon into a cached sprite definition.
type spriteValueTask struct {
	pipeline.NopTask
	urn     string
	size    string
	src     string
	dest    string
	encoder SpriteEncoder
}

func (t *spriteValueTask) Identifier() string { return taskID(t.urn, kindSpriteValue, t.size) }

func (t *spriteValueTask) ResourceGroup() pipeline.ResourceGroup { return pipeline.GroupSpriteValue }

func (t *spriteValueTask) Cleanup(scopes pipeline.Scopes) error {
	if !scopes.Includes(config.CleanupSpriteValue) {
		return nil
	}
	return removeFile(t.dest)
}

func (t *spriteValueTask) CreateResources(ctx context.Context) error {
	if exists(t.dest) {
		return nil
	}
	sprite, err := t.encoder.EncodeSprite(ctx, t.src)
	if err != nil {
		return err
	}
	if err := ensureParent(t.dest); err != nil {
		return err
	}
	// #nosec G306 -- cached sprite definitions are not sensitive.
	if err := os.WriteFile(t.dest, append(sprite, '\n'), 0o644); err != nil {
		return fmt.Errorf("write sprite %s: %w", t.dest, err)
	}
	return nil
}
