package ui

// InsetMargin is the gap between the height-field inset and the view edge.
const InsetMargin = 12

// InsetLayout places a gridW x gridH inset in the bottom-left corner of a
// viewW x viewH view, scaled to fit within a quarter of the smaller view
// dimension. It returns the top-left corner and the scale factor.
func InsetLayout(gridW, gridH, viewW, viewH int) (x, y, scale float64) {
	if gridW <= 0 || gridH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0
	}
	box := float64(min(viewW, viewH)) / 4
	scale = box / float64(max(gridW, gridH))
	if scale > 4 {
		scale = 4
	}
	x = InsetMargin
	y = float64(viewH) - InsetMargin - scale*float64(gridH)
	return x, y, scale
}
