package plantuml

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	"git.home.luguber.info/inful/plantuml-generator/internal/retry"
)

// SpriteEncoding is the -encodesprite format of generated sprites.
const SpriteEncoding = "16z"

// Client runs the PlantUML jar.
type Client struct {
	Java    string
	Jar     string
	Version string
	Runner  Runner
	// HTTP downloads the jar; nil uses NewHTTPClient.
	HTTP *http.Client
	// ReleaseURL overrides JarURL, mostly for tests.
	ReleaseURL string
}

// NewClient builds a client from a normalized PlantUML configuration.
func NewClient(cfg config.PlantUMLConfig, runner Runner) *Client {
	if runner == nil {
		runner = ExecRunner{Timeout: cfg.ToolTimeout}
	}
	return &Client{
		Java:    cfg.JavaBinary,
		Jar:     cfg.PlantUMLJar,
		Version: cfg.PlantUMLVersion,
		Runner:  runner,
	}
}

// Render renders a diagram source next to itself. Extra args are passed
// after the source path.
func (c *Client) Render(ctx context.Context, path string, args []string) error {
	cmd := append([]string{"-jar", c.Jar, path}, args...)
	if _, err := c.Runner.Run(ctx, c.Java, cmd...); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// EncodeSprite encodes an image as a PlantUML sprite definition.
func (c *Client) EncodeSprite(ctx context.Context, path string) ([]byte, error) {
	out, err := c.Runner.Run(ctx, c.Java, "-jar", c.Jar, "-encodesprite", SpriteEncoding, path)
	if err != nil {
		return nil, fmt.Errorf("encode sprite %s: %w", path, err)
	}
	return bytes.TrimSpace(out), nil
}

// JarURL is the GitHub release asset of a PlantUML version.
func JarURL(version string) string {
	return fmt.Sprintf("https://github.com/plantuml/plantuml/releases/download/v%s/plantuml-%s.jar", version, version)
}

// EnsureJar downloads the jar unless it already exists. It reports whether a
// download happened.
func (c *Client) EnsureJar(ctx context.Context, policy retry.Policy) (bool, error) {
	if fileExists(c.Jar) {
		return false, nil
	}
	url := c.ReleaseURL
	if url == "" {
		url = JarURL(c.Version)
	}
	if err := Download(ctx, c.HTTP, url, c.Jar, policy); err != nil {
		return false, err
	}
	return true, nil
}
