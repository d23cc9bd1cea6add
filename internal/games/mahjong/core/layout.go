package core

// Layout is the ordered list of positions a board fills with tiles.
type Layout []Position

// RectLayout is a single-layer width x height grid.
func RectLayout(width, height int) Layout {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make(Layout, 0, width*height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			out = append(out, Position{Row: r, Col: c})
		}
	}
	return out
}

// PyramidLayout stacks shrinking rectangles on a width x height base, each
// layer inset by one cell on every side, while the layer stays at least 2x1.
func PyramidLayout(width, height int) Layout {
	var out Layout
	for layer := 0; ; layer++ {
		w, h := width-2*layer, height-2*layer
		if w < 2 || h < 1 {
			break
		}
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				out = append(out, Position{Layer: layer, Row: r + layer, Col: c + layer})
			}
		}
	}
	return out
}

// Bounds returns the grid extent (columns, rows) and layer count.
func (l Layout) Bounds() (width, height, layers int) {
	for _, p := range l {
		width = max(width, p.Col+1)
		height = max(height, p.Row+1)
		layers = max(layers, p.Layer+1)
	}
	return width, height, layers
}
