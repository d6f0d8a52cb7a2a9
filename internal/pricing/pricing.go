// Package pricing computes itemized quotations for aluminium windows.
//
// Every function in this package is pure: the result depends only on the
// arguments, so calls may run concurrently without coordination. Intermediate
// values keep full float64 precision; rounding happens once, when the Result
// is assembled.
package pricing

import "github.com/Simplici0/windowquote/internal/money"

// Calculate validates a request and prices it. On error the Result is zero.
func Calculate(req Request) (Result, error) {
	in, err := req.resolve()
	if err != nil {
		return Result{}, err
	}

	geo := Measure(Dimensions{Width: in.width, Height: in.height}, in.profile.WeightPerMeter, in.glass.WeightPerSqFt)
	if !geo.finite() {
		return Result{}, invalidDimension("window %v x %v mm is too large to price", in.width, in.height)
	}
	rate := SelectRate(geo.AreaSqFt, in.profile.ScaledPricing, in.override)
	qty := float64(in.quantity)

	profileCost := geo.AreaSqFt * rate.PricePerSqFt
	glassCost := 0.0
	if !rate.Override {
		glassCost = geo.AreaSqFt * in.glass.Surcharge * in.glassMultiplier
	}
	unitPrice := profileCost + glassCost
	totalValue := unitPrice * qty

	accessoryPerUnit := 0.0
	if in.options.IncludeMesh && in.profile.SupportsPleatedMesh {
		accessoryPerUnit += in.accessories.PleatedMesh
	}
	if in.options.PremiumFinishing {
		accessoryPerUnit += in.accessories.PremiumFinishing
	}
	totalAccessory := accessoryPerUnit * qty

	installation := 0.0
	if in.options.IncludeInstallation {
		installation = qty * in.charges.InstallationPerWindow
	}
	transportation := 0.0
	if in.options.IncludeTransportation {
		transportation = in.charges.Transportation
	}
	loading := 0.0
	if in.options.IncludeLoadingUnloading {
		loading = in.charges.LoadingUnloading
	}

	subtotal := totalValue + totalAccessory + transportation + loading + installation
	gst := subtotal * (in.gstRate / 100)
	grandTotal := subtotal + gst
	if !finite(grandTotal) {
		return Result{}, invalidRate("quotation total overflows: reduce the size, quantity or rates")
	}

	return Result{
		AreaSqFt:       money.Round3(geo.AreaSqFt),
		PerimeterMeter: money.Round3(geo.PerimeterMeter),
		FrameWeight:    money.Round3(geo.FrameWeight),
		GlassWeight:    money.Round3(geo.GlassWeight),
		MaterialWeight: money.Round3(geo.MaterialWeight),

		Tier:            rate.Tier,
		PricePerSqFt:    money.Round2(rate.PricePerSqFt),
		OverrideApplied: rate.Override,

		ProfileCost: money.Round2(profileCost),
		GlassCost:   money.Round2(glassCost),
		UnitPrice:   money.Round2(unitPrice),
		Quantity:    in.quantity,
		TotalValue:  money.Round2(totalValue),

		AccessoryCostPerUnit: money.Round2(accessoryPerUnit),
		TotalAccessoryCost:   money.Round2(totalAccessory),

		InstallationCharge:   money.Round2(installation),
		TransportationCharge: money.Round2(transportation),
		LoadingCharge:        money.Round2(loading),

		Subtotal:   money.Round2(subtotal),
		GSTRate:    in.gstRate,
		GSTAmount:  money.Round2(gst),
		GrandTotal: money.Round2(grandTotal),

		Legacy: LegacyFigures{
			BasePrice:      money.Round2(geo.AreaSqFt * in.profile.BasePrice),
			GlassSurcharge: money.Round2(geo.AreaSqFt * in.glass.Surcharge),
		},
	}, nil
}
