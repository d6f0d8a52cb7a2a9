package pricing

import "math"

// resolved is a validated request with optional fields settled.
type resolved struct {
	width, height   float64
	quantity        int
	profile         ProfileSystem
	glass           GlassType
	glassMultiplier float64
	options         Options
	charges         Charges
	accessories     AccessoryPricing
	gstRate         float64
	override        float64
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (r Request) resolve() (resolved, error) {
	if err := validateDimensions(r.Dimensions, r.Bounds); err != nil {
		return resolved{}, err
	}
	if r.Quantity <= 0 {
		return resolved{}, invalidQuantity("quantity must be a positive integer, got %d", r.Quantity)
	}
	if r.Profile == nil {
		return resolved{}, MissingRecord("profile", "")
	}
	if r.Glass == nil {
		return resolved{}, MissingRecord("glass type", "")
	}
	if err := r.Profile.Validate(); err != nil {
		return resolved{}, err
	}
	if err := r.Glass.Validate(); err != nil {
		return resolved{}, err
	}

	rates := []struct {
		field string
		value float64
	}{
		{"transportation", r.Charges.Transportation},
		{"loadingUnloading", r.Charges.LoadingUnloading},
		{"installationPerWindow", r.Charges.InstallationPerWindow},
		{"pleatedMesh", r.Accessories.PleatedMesh},
		{"premiumFinishing", r.Accessories.PremiumFinishing},
		{"gstRate", r.Tax.GSTRate},
	}
	for _, rate := range rates {
		if err := CheckRate(rate.field, rate.value); err != nil {
			return resolved{}, err
		}
	}

	var override float64
	if r.UnitPriceOverride != nil {
		if err := CheckRate("unitPriceOverride", *r.UnitPriceOverride); err != nil {
			return resolved{}, err
		}
		override = *r.UnitPriceOverride
	}

	return resolved{
		width:           r.Dimensions.Width,
		height:          r.Dimensions.Height,
		quantity:        r.Quantity,
		profile:         *r.Profile,
		glass:           *r.Glass,
		glassMultiplier: r.Glass.Multiplier(),
		options:         r.Options,
		charges:         r.Charges,
		accessories:     r.Accessories,
		gstRate:         r.Tax.GSTRate,
		override:        override,
	}, nil
}

func validateDimensions(d Dimensions, bounds *DimensionBounds) error {
	if !finite(d.Width) || d.Width <= 0 {
		return invalidDimension("width must be a positive number of millimetres, got %v", d.Width)
	}
	if !finite(d.Height) || d.Height <= 0 {
		return invalidDimension("height must be a positive number of millimetres, got %v", d.Height)
	}
	if bounds == nil {
		return nil
	}

	if (bounds.MinWidth > 0 && d.Width < bounds.MinWidth) || (bounds.MaxWidth > 0 && d.Width > bounds.MaxWidth) {
		return invalidDimension("width must be between %gmm and %gmm", bounds.MinWidth, bounds.MaxWidth)
	}
	if (bounds.MinHeight > 0 && d.Height < bounds.MinHeight) || (bounds.MaxHeight > 0 && d.Height > bounds.MaxHeight) {
		return invalidDimension("height must be between %gmm and %gmm", bounds.MinHeight, bounds.MaxHeight)
	}
	return nil
}

// Validate checks that every rate, weight and threshold of the profile is a
// finite non-negative number.
func (p ProfileSystem) Validate() error {
	if err := CheckRate("profile weightPerMeter", p.WeightPerMeter); err != nil {
		return err
	}
	if err := CheckRate("profile basePrice", p.BasePrice); err != nil {
		return err
	}
	for _, nt := range p.ScaledPricing.ordered() {
		if err := CheckRate(string(nt.name)+" pricePerSqFt", nt.tier.PricePerSqFt); err != nil {
			return err
		}
		if nt.name == TierExtraLarge {
			continue
		}
		if err := CheckRate(string(nt.name)+" threshold", nt.tier.Threshold); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the glass surcharge, weight and multiplier.
func (g GlassType) Validate() error {
	if err := CheckRate("glass surcharge", g.Surcharge); err != nil {
		return err
	}
	if err := CheckRate("glass weightPerSqFt", g.WeightPerSqFt); err != nil {
		return err
	}
	return CheckRate("glass scaleMultiplier", g.Multiplier())
}

// CheckRate rejects NaN, infinite and negative amounts with ErrInvalidRate.
func CheckRate(field string, v float64) error {
	if !finite(v) {
		return invalidRate("%s must be a finite number", field)
	}
	if v < 0 {
		return invalidRate("%s must not be negative, got %v", field, v)
	}
	return nil
}
