package render

import (
	"image"
	"image/color"
	"math"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/scene"
)

// rgb is a linear color with components in [0, 1].
type rgb struct {
	r, g, b float64
}

func toRGB(c color.Color) rgb {
	if c == nil {
		return rgb{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rgb{float64(n.R) / 255, float64(n.G) / 255, float64(n.B) / 255}
}

func (c rgb) mul(o rgb) rgb       { return rgb{c.r * o.r, c.g * o.g, c.b * o.b} }
func (c rgb) add(o rgb) rgb       { return rgb{c.r + o.r, c.g + o.g, c.b + o.b} }
func (c rgb) scale(s float64) rgb { return rgb{c.r * s, c.g * s, c.b * s} }

func (c rgb) lerp(o rgb, t float64) rgb {
	return rgb{common.Lerp(c.r, o.r, t), common.Lerp(c.g, o.g, t), common.Lerp(c.b, o.b, t)}
}

func (c rgb) nrgba() color.NRGBA {
	to8 := func(v float64) uint8 { return uint8(math.Round(common.Clamp(v, 0, 1) * 255)) }
	return color.NRGBA{R: to8(c.r), G: to8(c.g), B: to8(c.b), A: 0xff}
}

// irradiance is the light arriving at a surface with normal n: the
// hemispheric ambient blended by how much n points up, plus the sun's
// Lambert term.
func irradiance(l scene.Lights, n common.Vec3) rgb {
	up := (n.Y + 1) / 2
	ambient := toRGB(l.AmbientGround).lerp(toRGB(l.AmbientSky), up).scale(l.AmbientIntensity)
	lambert := math.Max(0, n.Dot(l.SunDirection.Scale(-1)))
	return ambient.add(toRGB(l.SunColor).scale(l.SunIntensity * lambert))
}

// ShadeGround bakes the lit ground texture, one pixel per terrain sample.
func ShadeGround(t *scene.Terrain, l scene.Lights) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Cols(), t.Rows()))
	low, high := toRGB(t.Low), toRGB(t.High)
	span := t.MaxHeight - t.MinHeight
	for j := 0; j < t.Rows(); j++ {
		for i := 0; i < t.Cols(); i++ {
			h := 0.0
			if span > 0 {
				h = (t.Sample(i, j) - t.MinHeight) / span
			}
			base := low.lerp(high, h)
			img.SetNRGBA(i, j, base.mul(irradiance(l, t.Normal(i, j))).nrgba())
		}
	}
	return img
}

// SkyGradient is a 1 pixel wide vertical gradient from top to bottom.
func SkyGradient(s scene.Sky, height int) *image.NRGBA {
	height = max(height, 2)
	img := image.NewNRGBA(image.Rect(0, 0, 1, height))
	top, bottom := toRGB(s.Top), toRGB(s.Bottom)
	for y := 0; y < height; y++ {
		img.SetNRGBA(0, y, top.lerp(bottom, float64(y)/float64(height-1)).nrgba())
	}
	return img
}

// billboardLight is the brightness applied to upright sprites, lit as if
// facing the camera with a vertical normal tilted toward the sun.
func billboardLight(l scene.Lights) rgb {
	n := common.Vec3{X: -l.SunDirection.X, Y: 0.5, Z: -l.SunDirection.Z}.Normalize()
	c := irradiance(l, n)
	return rgb{math.Min(c.r, 1.2), math.Min(c.g, 1.2), math.Min(c.b, 1.2)}
}
