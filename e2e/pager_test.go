//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestImageInfoPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	img, err := tf.CreateTestImage("info.png", 24, 12)
	require.NoError(t, err, "Failed to create test image")

	err = tf.StartApp(img)
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("info.png"), "Should show the image name")

	tf.ShowInfo()
	require.True(t, tf.SeePlain("24 x 12 px"), "Pager should show the image size")
	require.True(t, tf.SeePlain("Zoom:"), "Pager should show the zoom")

	tf.Quit()
	require.True(t, tf.SeePlain("info.png"), "Should return to the viewer after closing the pager")

	tf.Quit()
	require.NoError(t, tf.WaitExit(2*time.Second))
}

func TestOpenPrompt(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	img, err := tf.CreateTestImage("opened.png", 8, 8)
	require.NoError(t, err, "Failed to create test image")

	err = tf.StartApp()
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.OpenPrompt()
	require.True(t, tf.SeePlain("Open:"), "Should show the open prompt")
	tf.SendKeys(img)
	tf.Enter()
	require.True(t, tf.SeePlain("8x8"), "Submitting a path should load it")

	tf.OpenPrompt()
	tf.SendKeys("missing.png")
	tf.Enter()
	require.True(t, tf.SeePlain("Not found"), "A missing file should be reported")

	tf.Quit()
	require.NoError(t, tf.WaitExit(2*time.Second))
}
