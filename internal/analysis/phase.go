package analysis

import (
	"math"
	"strings"
)

// Portrait plots ys against xs as a width x height ASCII scatter with a
// 10% margin. Axes are drawn where zero is in view.
func Portrait(xs, ys []float64, width, height int) string {
	n := min(len(xs), len(ys))
	if n == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 0; i < n; i++ {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := 0; r < height; r++ {
			grid[r][c] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := 0; c < width; c++ {
			grid[r][c] = '─'
		}
	}

	for i := 0; i < n; i++ {
		r, c := row(ys[i]), col(xs[i])
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = '•'
		}
	}

	var sb strings.Builder
	for _, r := range grid {
		sb.WriteString(string(r))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Wrap reduces phases to [0, 2π).
func Wrap(phases []float64) []float64 {
	out := make([]float64, len(phases))
	for i, p := range phases {
		w := math.Mod(p, 2*math.Pi)
		if w < 0 {
			w += 2 * math.Pi
		}
		out[i] = w
	}
	return out
}
