package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// DrawLine draws a line between the two points with the given thickness and color.
func DrawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawArc strokes the part of the ellipse centred at (cx, cy) between the
// start and end angles, in radians, measured clockwise from the positive x axis.
func DrawArc(img *image.RGBA, cx, cy, rx, ry int, start, end float64, col color.Color, thick int) {
	steps := int(math.Ceil(math.Abs(end-start) * math.Sqrt(float64(rx*rx+ry*ry))))
	if steps < 8 {
		steps = 8
	}
	var prevX, prevY int
	for i := 0; i <= steps; i++ {
		angle := start + (end-start)*float64(i)/float64(steps)
		x := cx + int(math.Round(math.Cos(angle)*float64(rx)))
		y := cy + int(math.Round(math.Sin(angle)*float64(ry)))
		if i > 0 {
			DrawLine(img, prevX, prevY, x, y, col, thick)
		} else {
			setThickPixel(img, x, y, thick, col)
		}
		prevX, prevY = x, y
	}
}

// DrawCircle strokes a circle centred at (cx, cy).
func DrawCircle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	DrawArc(img, cx, cy, r, r, 0, 2*math.Pi, col, thick)
}

// FillCircle fills a circle centred at (cx, cy).
func FillCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	FillEllipse(img, cx, cy, r, r, col)
}

// FillEllipse fills an axis-aligned ellipse centred at (cx, cy).
func FillEllipse(img *image.RGBA, cx, cy, rx, ry int, col color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	src := image.NewUniform(col)
	for dy := -ry; dy <= ry; dy++ {
		span := int(float64(rx) * math.Sqrt(1.0-float64(dy*dy)/float64(ry*ry)))
		row := image.Rect(cx-span, cy+dy, cx+span+1, cy+dy+1)
		draw.Draw(img, row, src, image.Point{}, draw.Over)
	}
}

// FillRect fills rect with col.
func FillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

// StrokeRect outlines rect with the given thickness.
func StrokeRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	DrawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	DrawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	DrawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	DrawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// FillRoundRect fills rect with corners rounded to radius r.
func FillRoundRect(img *image.RGBA, rect image.Rectangle, r int, col color.Color) {
	if limit := min(rect.Dx(), rect.Dy()) / 2; r > limit {
		r = limit
	}
	if r <= 0 {
		FillRect(img, rect, col)
		return
	}
	src := image.NewUniform(col)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		inset := 0
		var dy int
		switch {
		case y < rect.Min.Y+r:
			dy = rect.Min.Y + r - y
		case y >= rect.Max.Y-r:
			dy = y - (rect.Max.Y - r - 1)
		}
		if dy > 0 {
			inset = r - int(math.Sqrt(float64(r*r-dy*dy)))
		}
		draw.Draw(img, image.Rect(rect.Min.X+inset, y, rect.Max.X-inset, y+1), src, image.Point{}, draw.Over)
	}
}
