package icon

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeKeepsAspectRatio(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	require.NoError(t, imaging.Save(imaging.New(80, 40, color.NRGBA{R: 255, A: 255}), src))

	dst := filepath.Join(dir, "out", "wideXs.png")
	require.NoError(t, Resize(src, dst, 10))

	img, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestResizeLeavesOnlyDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	require.NoError(t, imaging.Save(imaging.New(40, 40, color.NRGBA{G: 255, A: 255}), src))

	out := filepath.Join(dir, "out")
	require.NoError(t, Resize(src, filepath.Join(out, "icon.png"), 20))
	require.NoError(t, Resize(src, filepath.Join(out, "icon.png"), 10))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "icon.png", entries[0].Name())

	img, err := imaging.Open(filepath.Join(out, "icon.png"))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestResizeRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	require.NoError(t, imaging.Save(imaging.New(40, 40, color.NRGBA{G: 255, A: 255}), src))

	require.Error(t, Resize(src, filepath.Join(dir, "icon.xyz"), 10))
	_, err := os.Stat(filepath.Join(dir, "icon.xyz"))
	assert.True(t, os.IsNotExist(err))
}

func TestResizeErrors(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, Resize(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"), 10))
	require.Error(t, Resize(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"), 0))
}

func TestIsVector(t *testing.T) {
	assert.True(t, IsVector("icons/a.svg"))
	assert.False(t, IsVector("icons/a.png"))
}
