package export

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/system"
	"github.com/san-kum/orrery/internal/viz"
)

type Options struct {
	Width, Height int
	Background    string
	// Padding is the fraction of the view left empty around the scene.
	Padding     float64
	StrokeWidth float64
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 800, Background: "#0a0a0a", Padding: 0.05, StrokeWidth: 1.5}
}

// view maps the XZ plane onto the image, keeping aspect ratio.
type view struct {
	minX, minZ, scale float64
	offX, offY        float64
}

func fit(points []r3.Vec, opts Options) view {
	if len(points) == 0 {
		return view{scale: 1}
	}
	minX, maxX := points[0].X, points[0].X
	minZ, maxZ := points[0].Z, points[0].Z
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minZ, maxZ = math.Min(minZ, p.Z), math.Max(maxZ, p.Z)
	}
	spanX, spanZ := maxX-minX, maxZ-minZ
	if spanX == 0 {
		spanX = 1
	}
	if spanZ == 0 {
		spanZ = 1
	}

	w := float64(opts.Width) * (1 - 2*opts.Padding)
	h := float64(opts.Height) * (1 - 2*opts.Padding)
	scale := math.Min(w/spanX, h/spanZ)
	return view{
		minX:  minX,
		minZ:  minZ,
		scale: scale,
		offX:  (float64(opts.Width) - spanX*scale) / 2,
		offY:  (float64(opts.Height) - spanZ*scale) / 2,
	}
}

func (v view) at(p r3.Vec) (float64, float64) {
	return v.offX + (p.X-v.minX)*v.scale, v.offY + (p.Z-v.minZ)*v.scale
}

func header(sb *strings.Builder, opts Options) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background)
}

func polyline(sb *strings.Builder, v view, pts []r3.Vec, closed bool, stroke string, width float64) {
	if len(pts) < 2 {
		return
	}
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="%.1f" d="`, stroke, width)
	for i, p := range pts {
		x, y := v.at(p)
		if i == 0 {
			fmt.Fprintf(sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	if closed {
		sb.WriteString(" Z")
	}
	sb.WriteString("\"/>\n")
}

// PathsSVG draws every planet's orbit polyline seen from above, stroked
// in the planet's tint, with stars and the planets' current positions as
// discs.
func PathsSVG(paths map[system.BodyID][]r3.Vec, bodies []system.Body, opts Options) string {
	var all []r3.Vec
	for _, b := range bodies {
		all = append(all, b.Position)
		all = append(all, paths[b.ID]...)
	}
	v := fit(all, opts)

	var sb strings.Builder
	header(&sb, opts)
	for _, b := range bodies {
		if b.IsPlanet() {
			polyline(&sb, v, paths[b.ID], true, b.Tint.String(), opts.StrokeWidth)
		}
	}
	for _, b := range bodies {
		x, y := v.at(b.Position)
		r := 3.0
		if b.Kind == system.KindStar {
			r = 6 + 4*b.Scale
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, x, y, r, b.Tint.String(), b.Name)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// TrackSVG draws recorded planet tracks seen from above. colors maps body
// id to stroke color; unknown ids are drawn white.
func TrackSVG(tracks []storage.Track, colors map[int]string, opts Options) string {
	var all []r3.Vec
	for _, tr := range tracks {
		all = append(all, tr.Positions...)
	}
	v := fit(all, opts)

	var sb strings.Builder
	header(&sb, opts)
	for _, tr := range tracks {
		stroke, ok := colors[tr.ID]
		if !ok {
			stroke = "#ffffff"
		}
		polyline(&sb, v, tr.Positions, false, stroke, opts.StrokeWidth)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// CanvasToSVG draws each braille dot of a canvas as a circle in its
// cell's ink.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	opts := Options{
		Width:      int(float64(canvas.SubWidth()) * scale),
		Height:     int(float64(canvas.SubHeight()) * scale),
		Background: "#0a0a0a",
	}
	var sb strings.Builder
	header(&sb, opts)

	r := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			ink := string(canvas.Ink[y/4][x/2])
			if ink == "" {
				ink = "#00ff00"
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r, ink)
		}
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}
