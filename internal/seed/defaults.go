package seed

import "github.com/Simplici0/windowquote/internal/pricing"

const (
	defaultCurrency = "INR"
	defaultGSTRate  = 18
	minDimensionMM  = 300
	maxDimensionMM  = 5000
)

var defaultCharges = pricing.Charges{
	Transportation:        5000,
	LoadingUnloading:      2000,
	InstallationPerWindow: 100,
}

var defaultAccessories = pricing.AccessoryPricing{
	PleatedMesh:      1500,
	PremiumFinishing: 800,
}

var defaultCompany = struct {
	Name, Address, Phone, Email, GSTIN string
}{
	Name:    "Mega Profile",
	Address: "Industrial Plot No. 123, Phase 1, Gurgaon",
	Phone:   "+91 98765 43210",
	Email:   "info@megaprofile.com",
	GSTIN:   "06AAAAA0000A1Z5",
}

var defaultProfiles = []pricing.ProfileSystem{
	{
		ID:             "MC45",
		Name:           "MC45 (Luxury Line Casement System)",
		Description:    "Luxury Line Casement System",
		FrameSize:      "45mm x 45mm",
		WindowTypes:    []string{"Casement", "Fixed"},
		WeightPerMeter: 2.5,
		BasePrice:      1500,
		Accessories:    []string{"Butt Hinge", "Door Locking Handle", "S2 Handle"},
		ScaledPricing: pricing.ScaledPricing{
			VerySmall:  pricing.Tier{Threshold: 10, PricePerSqFt: 2600},
			Small:      pricing.Tier{Threshold: 30, PricePerSqFt: 2200},
			Medium:     pricing.Tier{Threshold: 80, PricePerSqFt: 2000},
			Large:      pricing.Tier{Threshold: 150, PricePerSqFt: 1850},
			ExtraLarge: pricing.Tier{PricePerSqFt: 1700},
		},
		SupportsPleatedMesh: true,
	},
	{
		ID:             "MS16",
		Name:           "MS16 (Luxury Line 2-Track Sliding System)",
		Description:    "Luxury Line 2-Track Sliding System",
		FrameSize:      "45mm x 45mm",
		WindowTypes:    []string{"Sliding", "Sliding with Mesh"},
		WeightPerMeter: 3.2,
		BasePrice:      2000,
		Accessories:    []string{"Multi-Point Handle", "Tripal Wheel Roller", "Pleated Mesh"},
		ScaledPricing: pricing.ScaledPricing{
			VerySmall:  pricing.Tier{Threshold: 10, PricePerSqFt: 3000},
			Small:      pricing.Tier{Threshold: 30, PricePerSqFt: 2600},
			Medium:     pricing.Tier{Threshold: 80, PricePerSqFt: 2400},
			Large:      pricing.Tier{Threshold: 150, PricePerSqFt: 2200},
			ExtraLarge: pricing.Tier{PricePerSqFt: 2000},
		},
	},
}

var defaultGlass = []pricing.GlassType{
	{ID: "frosted-5mm", Name: "5mm Frosted Toughened Glass", Surcharge: 100, WeightPerSqFt: 1.16},
	{ID: "clear-8mm", Name: "8mm Clear Toughened Glass", Surcharge: 150, WeightPerSqFt: 1.86},
	{ID: "toughened-12mm", Name: "12mm Clear Toughened Glass", Surcharge: 200, WeightPerSqFt: 2.79},
	{ID: "laminated-11.52mm-single", Name: "11.52mm Laminated Glass Single", Surcharge: 250, WeightPerSqFt: 2.68},
	{ID: "laminated-11.52mm-double", Name: "11.52mm Laminated Glass Double", Surcharge: 400, WeightPerSqFt: 5.35},
	{ID: "laminated-51.52mm", Name: "51.52mm Laminated Glass", Surcharge: 600, WeightPerSqFt: 5.46},
	{ID: "laminated-61.52mm", Name: "61.52mm Laminated Glass", Surcharge: 750, WeightPerSqFt: 6.39},
}

type presetSeed struct {
	code, location, name string
	profileID, glassID   string
	rate                 float64
	width, height        float64
	quantity             int
	listPrice            float64
}

// defaultPresets is the published window schedule: the fixed rate quoted for
// each window and its list price.
var defaultPresets = []presetSeed{
	{"W01", "GF", "Luxury Line Casement", "MC45", "laminated-51.52mm", 2077.56, 1296, 3218, 1, 93275.29},
	{"W02", "Drawing Room", "Fixed Window", "MC45", "laminated-51.52mm", 1207.57, 2624, 3222, 1, 109900.87},
	{"W03", "Drawing Room", "Luxury Line 2-Track Sliding", "MS16", "laminated-51.52mm", 1908.16, 3917, 3263, 1, 262514.06},
	{"W04", "Kitchen", "Luxury Line 2-Track Sliding", "MC45", "laminated-11.52mm-single", 2875.37, 847, 1442, 2, 37790.59},
	{"W05", "Dining", "Luxury Line 2-Track Sliding", "MS16", "laminated-51.52mm", 2082.97, 2621, 3319, 1, 195041.26},
	{"W06", "BR1 GF", "Fixed with Exhaust", "MC45", "laminated-11.52mm-single", 1546.95, 768, 1131, 1, 14470.06},
	{"W07", "BR1 GF", "Luxury Line 2-Track Sliding", "MS16", "laminated-11.52mm-single", 2393.25, 3256, 1439, 1, 120690.26},
	{"W08", "Guest Room", "Luxury Line 2-Track Sliding", "MS16", "laminated-11.52mm-single", 3512.45, 1161, 1443, 1, 63328.50},
	{"W09", "GWR", "Fixed with Exhaust", "MC45", "laminated-11.52mm-single", 1587.94, 781, 975, 1, 13007.47},
	{"W10", "Hall Side", "Luxury Line 2-Track Sliding", "MS16", "laminated-51.52mm", 2455.71, 2872, 1478, 1, 112209.22},
	{"W11", "Hall DH", "Luxury Line 2-Track Sliding", "MS16", "laminated-51.52mm", 1964.30, 3338, 3340, 1, 235731.69},
	{"W12", "Stairs", "Fixed", "MC45", "laminated-11.52mm-single", 1420.94, 740, 1469, 1, 16625.68},
	{"W13", "Stairs", "Fixed", "MC45", "laminated-11.52mm-single", 1409.86, 741, 1570, 1, 17649.34},
	{"W14", "Stairs", "Fixed", "MC45", "laminated-11.52mm-single", 1418.63, 748, 1464, 1, 16720.75},
	{"W15", "Stairs", "Fixed", "MC45", "laminated-11.52mm-single", 1406.89, 744, 1576, 1, 17763.68},
	{"W16", "BR1 FF WR", "Fixed with Exhaust", "MC45", "frosted-5mm", 2768.43, 766, 1119, 1, 25538.10},
	{"W17", "BR1 FF", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 3130.97, 1146, 1456, 1, 56248.23},
	{"W18", "BR1 FF", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 1665.19, 3276, 2372, 1, 139288.36},
	{"W19", "GBR FF", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 3195.70, 1115, 1441, 2, 55278.45},
	{"W20", "GBR FF WR", "Fixed with Exhaust", "MC45", "frosted-5mm", 1123.46, 810, 1133, 1, 11101.29},
	{"W21", "DH", "Fixed", "MC45", "toughened-12mm", 838.78, 3382, 3354, 1, 102411.72},
	{"W22", "Courtyard FF", "Fixed", "MC45", "clear-8mm", 879.05, 1322, 1417, 1, 17722.60},
	{"W23", "Courtyard FF", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 2110.53, 2711, 1419, 1, 87395.22},
	{"W25", "L-Shape", "Fixed/Sliding Combo", "MS16", "laminated-61.52mm", 1815.25, 4743, 3123, 1, 289437.15},
	{"W26", "Library", "Fixed", "MC45", "laminated-51.52mm", 1375.54, 638, 3176, 1, 29997.49},
	{"W27", "Library Side", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 2402.57, 2169, 1284, 1, 72023.56},
	{"W28", "CW FF", "Fixed with Exhaust", "MC45", "frosted-5mm", 1224.06, 712, 965, 1, 9051.74},
	{"W29", "Stairs SF", "Fixed", "MC45", "clear-8mm", 1042.10, 700, 1410, 1, 11071.37},
	{"W30", "Stairs SF", "Fixed", "MC45", "clear-8mm", 906.65, 763, 3336, 1, 24837.21},
	{"W31", "Stairs SF", "Fixed", "MC45", "clear-8mm", 1049.50, 682, 1424, 1, 10969.26},
	{"W32", "Stairs SF", "Fixed", "MC45", "clear-8mm", 910.57, 753, 3337, 1, 24630.74},
	{"W33", "SF BR WR", "Fixed with Exhaust", "MC45", "frosted-5mm", 1191.25, 777, 972, 1, 9681.10},
	{"W34", "SF BR", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 2983.94, 1140, 1438, 1, 52643.29},
	{"W35", "SF BR", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 1960.45, 3306, 1440, 1, 100468.04},
	{"W36", "SF Lobby", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 3425.15, 1001, 1424, 1, 52537.30},
	{"W37", "SF Terrace", "Luxury Line 2-Track Sliding", "MS16", "clear-8mm", 2113.99, 1743, 2362, 1, 93682.34},
	{"W38", "Terrace WR", "Fixed with Exhaust", "MC45", "frosted-5mm", 1208.06, 706, 1012, 1, 9284.55},
	{"W39", "Hall Courtyard", "Fixed", "MC45", "laminated-51.52mm", 1203.05, 2696, 3263, 1, 113918.09},
	{"W40", "Library", "Fixed", "MC45", "laminated-51.52mm", 1491.65, 462, 3203, 1, 23763.01},
	{"W41", "Guest Room", "Luxury Line 2-Track Sliding", "MS16", "laminated-11.52mm-single", 3517.12, 1159, 1442, 1, 63261.22},
}
