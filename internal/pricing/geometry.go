package pricing

// Geometry holds the physical quantities derived from a window's size.
// Values are unrounded.
type Geometry struct {
	AreaSqFt       float64
	PerimeterMeter float64
	FrameWeight    float64
	GlassWeight    float64
	MaterialWeight float64
}

// Measure converts millimetre dimensions into area, perimeter and weight.
func Measure(d Dimensions, weightPerMeter, glassWeightPerSqFt float64) Geometry {
	area := (d.Width * d.Height) / SqMmPerSqFt
	perimeter := 2 * (d.Width + d.Height) / 1000

	frame := perimeter * weightPerMeter
	glass := area * glassWeightPerSqFt

	return Geometry{
		AreaSqFt:       area,
		PerimeterMeter: perimeter,
		FrameWeight:    frame,
		GlassWeight:    glass,
		MaterialWeight: frame + glass,
	}
}

func (g Geometry) finite() bool {
	return finite(g.AreaSqFt) && finite(g.PerimeterMeter) && finite(g.FrameWeight) &&
		finite(g.GlassWeight) && finite(g.MaterialWeight)
}
