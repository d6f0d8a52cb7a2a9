package pricing

// SqMmPerSqFt is the number of square millimetres in one square foot
// (1 ft = 304.8 mm). It is the only area conversion used by the engine.
const SqMmPerSqFt = 92903.04

// TierName identifies the scaled-pricing bracket a window falls into.
type TierName string

const (
	TierVerySmall  TierName = "verySmall"
	TierSmall      TierName = "small"
	TierMedium     TierName = "medium"
	TierLarge      TierName = "large"
	TierExtraLarge TierName = "extraLarge"

	// TierOverride is reported when a fixed unit rate replaced the tier table.
	TierOverride TierName = "Override"
)

// Tier is one bracket of a scaled pricing table. Threshold is an exclusive
// upper bound on the window area in sq.ft.
type Tier struct {
	Threshold    float64 `json:"threshold"`
	PricePerSqFt float64 `json:"pricePerSqFt"`
}

// ScaledPricing is the five-bracket rate table of a profile system.
// ExtraLarge.Threshold is ignored: the last bracket is unbounded.
type ScaledPricing struct {
	VerySmall  Tier `json:"verySmall"`
	Small      Tier `json:"small"`
	Medium     Tier `json:"medium"`
	Large      Tier `json:"large"`
	ExtraLarge Tier `json:"extraLarge"`
}

type namedTier struct {
	name TierName
	tier Tier
}

func (s ScaledPricing) ordered() [5]namedTier {
	return [5]namedTier{
		{TierVerySmall, s.VerySmall},
		{TierSmall, s.Small},
		{TierMedium, s.Medium},
		{TierLarge, s.Large},
		{TierExtraLarge, s.ExtraLarge},
	}
}

// ProfileSystem describes an aluminium frame system offered in the catalog.
type ProfileSystem struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	FrameSize      string        `json:"frameSize,omitempty"`
	WindowTypes    []string      `json:"windowTypes,omitempty"`
	WeightPerMeter float64       `json:"weightPerMeter"`
	ScaledPricing  ScaledPricing `json:"scaledPricing"`
	Accessories    []string      `json:"accessories,omitempty"`

	// SupportsPleatedMesh marks the systems a pleated mesh can be fitted to.
	SupportsPleatedMesh bool `json:"supportsPleatedMesh"`

	// BasePrice is the legacy flat rate per sq.ft. It only feeds the
	// Result.Legacy display block.
	BasePrice float64 `json:"basePrice"`
}

// GlassType describes a glazing option and its per-sq.ft surcharge.
type GlassType struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Surcharge     float64 `json:"surcharge"`
	WeightPerSqFt float64 `json:"weightPerSqFt"`

	// ScaleMultiplier scales the surcharge. Nil means 1.0.
	ScaleMultiplier *float64 `json:"scaleMultiplier,omitempty"`
}

// Multiplier returns the effective surcharge multiplier.
func (g GlassType) Multiplier() float64 {
	if g.ScaleMultiplier == nil {
		return 1.0
	}
	return *g.ScaleMultiplier
}

// Charges are the logistics and labour amounts of a quotation.
// Transportation and LoadingUnloading are flat per quotation;
// InstallationPerWindow is multiplied by the quantity.
type Charges struct {
	Transportation        float64 `json:"transportation"`
	LoadingUnloading      float64 `json:"loadingUnloading"`
	InstallationPerWindow float64 `json:"installationPerWindow"`
}

// AccessoryPricing holds per-window add-on amounts.
type AccessoryPricing struct {
	PleatedMesh      float64 `json:"pleatedMesh"`
	PremiumFinishing float64 `json:"premiumFinishing"`

	// Deprecated: superseded by Charges.InstallationPerWindow.
	Installation float64 `json:"installation,omitempty"`
}

// TaxConfig holds the GST rate in percent.
type TaxConfig struct {
	GSTRate float64 `json:"gstRate"`
}

// Dimensions are window sizes in millimetres.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DimensionBounds are the accepted window sizes in millimetres. A zero bound
// is not enforced.
type DimensionBounds struct {
	MinWidth  float64 `json:"minWidth"`
	MaxWidth  float64 `json:"maxWidth"`
	MinHeight float64 `json:"minHeight"`
	MaxHeight float64 `json:"maxHeight"`
}

// Options are the per-quotation feature toggles.
type Options struct {
	IncludeInstallation     bool `json:"includeInstallation"`
	IncludeMesh             bool `json:"includeMesh"`
	PremiumFinishing        bool `json:"premiumFinishing"`
	IncludeTransportation   bool `json:"includeTransportation"`
	IncludeLoadingUnloading bool `json:"includeLoadingUnloading"`
}

// Request is everything the engine needs to price one window line.
type Request struct {
	Dimensions  Dimensions
	Bounds      *DimensionBounds
	Profile     *ProfileSystem
	Glass       *GlassType
	Quantity    int
	Options     Options
	Charges     Charges
	Accessories AccessoryPricing
	Tax         TaxConfig

	// UnitPriceOverride, when set and positive, replaces the tier table with
	// a fixed rate per sq.ft that already includes glass.
	UnitPriceOverride *float64
}

// LegacyFigures are kept for older quotation layouts. They are never part of
// the totals.
type LegacyFigures struct {
	BasePrice      float64 `json:"basePrice"`
	GlassSurcharge float64 `json:"glassSurcharge"`
}

// Result is the itemized price of a window line. Money is rounded to two
// decimals; area, perimeter and weights to three.
type Result struct {
	AreaSqFt       float64 `json:"areaSqFt"`
	PerimeterMeter float64 `json:"perimeterMeter"`
	FrameWeight    float64 `json:"frameWeight"`
	GlassWeight    float64 `json:"glassWeight"`
	MaterialWeight float64 `json:"materialWeight"`

	Tier            TierName `json:"tier"`
	PricePerSqFt    float64  `json:"pricePerSqFt"`
	OverrideApplied bool     `json:"overrideApplied"`

	ProfileCost float64 `json:"profileCost"`
	GlassCost   float64 `json:"glassCost"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	TotalValue  float64 `json:"totalValue"`

	AccessoryCostPerUnit float64 `json:"accessoryCostPerUnit"`
	TotalAccessoryCost   float64 `json:"totalAccessoryCost"`

	InstallationCharge   float64 `json:"installationCharge"`
	TransportationCharge float64 `json:"transportationCharge"`
	LoadingCharge        float64 `json:"loadingCharge"`

	Subtotal   float64 `json:"subtotal"`
	GSTRate    float64 `json:"gstRate"`
	GSTAmount  float64 `json:"gstAmount"`
	GrandTotal float64 `json:"grandTotal"`

	Legacy LegacyFigures `json:"legacy"`
}
