package cvbackend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

func TestToolkit(t *testing.T) {
	tk, err := Toolkit()
	if !Available {
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnavailable))
		return
	}
	require.NoError(t, err)
	require.NoError(t, tk.Validate())

	// A bright square on black: one external contour, closed edges.
	p := imaging.NewPlane(60, 60)
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			p.Set(x, y, 255)
		}
	}

	contours, err := tk.Contours.ExternalContours(p)
	require.NoError(t, err)
	require.Len(t, contours, 1)
	assert.Equal(t, 20, contours[0].Bounds.X1)
	assert.Equal(t, 39, contours[0].Bounds.X2)

	edges, err := tk.Edges.Edges(p, 50, 150)
	require.NoError(t, err)
	assert.Greater(t, edges.CountAbove(0), 0)

	opened, err := tk.Open.Open(p, 25, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, opened.CountAbove(0))
}
