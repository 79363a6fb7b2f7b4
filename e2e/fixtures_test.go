//go:build e2e && unix

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates a temporary directory for test images
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateTestImage writes a w x h checkerboard PNG into the workspace
func (tf *TUITestFramework) CreateTestImage(name string, w, h int) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
			if (x+y)%2 == 0 {
				c = color.NRGBA{R: 0x20, G: 0x20, B: 0xc0, A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(tf.workspace, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return path, nil
}

// ConfigPath returns where the app keeps its config under the isolated HOME
func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, ".config", "pixview", "config.toml")
}
