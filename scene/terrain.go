package scene

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/milk9111/nightwalk/common"
)

var ErrEmptyHeightmap = errors.New("scene: empty heightmap")

// Terrain is a square heightfield centred on the origin. Sample (0,0) sits at
// (-Size/2, -Size/2) in world XZ.
type Terrain struct {
	Size      float64
	MinHeight float64
	MaxHeight float64
	// Low and High tint the ground from MinHeight to MaxHeight.
	Low  color.Color
	High color.Color

	cols    int
	rows    int
	heights []float64
}

// NewTerrain converts a heightmap to heights. Brightness maps linearly from
// minHeight (black) to maxHeight (white).
func NewTerrain(img image.Image, size, minHeight, maxHeight float64) (*Terrain, error) {
	if img == nil {
		return nil, ErrEmptyHeightmap
	}
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 2 {
		return nil, ErrEmptyHeightmap
	}
	if size <= 0 {
		size = float64(b.Dx())
	}

	t := &Terrain{
		Size:      size,
		MinHeight: minHeight,
		MaxHeight: maxHeight,
		Low:       color.NRGBA{R: 0x2e, G: 0x4a, B: 0x2c, A: 0xff},
		High:      color.NRGBA{R: 0x8c, G: 0x91, B: 0x66, A: 0xff},
		cols:      b.Dx(),
		rows:      b.Dy(),
		heights:   make([]float64, b.Dx()*b.Dy()),
	}
	for y := 0; y < t.rows; y++ {
		for x := 0; x < t.cols; x++ {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			t.heights[y*t.cols+x] = common.Lerp(minHeight, maxHeight, float64(g.Y)/0xffff)
		}
	}
	return t, nil
}

func (t *Terrain) Cols() int { return t.cols }
func (t *Terrain) Rows() int { return t.rows }

// Sample returns the height of grid point (i, j), clamped to the grid.
func (t *Terrain) Sample(i, j int) float64 {
	i = max(0, min(t.cols-1, i))
	j = max(0, min(t.rows-1, j))
	return t.heights[j*t.cols+i]
}

// HalfSize is the distance from the centre to an edge.
func (t *Terrain) HalfSize() float64 {
	return t.Size / 2
}

// GridPos converts world XZ to fractional grid coordinates.
func (t *Terrain) GridPos(x, z float64) (float64, float64) {
	u := (x + t.HalfSize()) / t.Size * float64(t.cols-1)
	v := (z + t.HalfSize()) / t.Size * float64(t.rows-1)
	return u, v
}

// WorldPos converts grid point (i, j) to world XZ.
func (t *Terrain) WorldPos(i, j int) (float64, float64) {
	x := float64(i)/float64(t.cols-1)*t.Size - t.HalfSize()
	z := float64(j)/float64(t.rows-1)*t.Size - t.HalfSize()
	return x, z
}

// HeightAt bilinearly interpolates the height at world XZ. Points outside the
// terrain take the height of the nearest edge.
func (t *Terrain) HeightAt(x, z float64) float64 {
	u, v := t.GridPos(x, z)
	u = common.Clamp(u, 0, float64(t.cols-1))
	v = common.Clamp(v, 0, float64(t.rows-1))

	i0, j0 := int(math.Floor(u)), int(math.Floor(v))
	fu, fv := u-float64(i0), v-float64(j0)

	top := common.Lerp(t.Sample(i0, j0), t.Sample(i0+1, j0), fu)
	bottom := common.Lerp(t.Sample(i0, j0+1), t.Sample(i0+1, j0+1), fu)
	return common.Lerp(top, bottom, fv)
}

// Normal returns the unit surface normal at grid point (i, j).
func (t *Terrain) Normal(i, j int) common.Vec3 {
	cellX := t.Size / float64(t.cols-1)
	cellZ := t.Size / float64(t.rows-1)
	dx := (t.Sample(i+1, j) - t.Sample(i-1, j)) / (2 * cellX)
	dz := (t.Sample(i, j+1) - t.Sample(i, j-1)) / (2 * cellZ)
	n := common.Vec3{X: -dx, Y: 1, Z: -dz}
	return n.Scale(1 / math.Sqrt(dx*dx+1+dz*dz))
}

// Contains reports whether world XZ lies on the terrain.
func (t *Terrain) Contains(x, z float64) bool {
	h := t.HalfSize()
	return x >= -h && x <= h && z >= -h && z <= h
}
