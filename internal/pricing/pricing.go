// Package pricing computes plate costs and suggested selling prices.
//
// Everything here is a pure function over already-resolved inputs: callers
// resolve global settings and any project override first, then pass the
// result in. The same functions back the single-plate preview, batch entry
// and persisted prices, so the numbers a user previews are exactly the
// numbers that get saved.
package pricing

import (
	"math"
)

// Cost model names. Anything unrecognized behaves as ModelWeight.
const (
	ModelWeight = "weight"
	ModelMax    = "max"
)

// Pricing method names. Anything unrecognized behaves as MethodNone.
const (
	MethodNone      = "none"
	MethodMarkup    = "markup"
	MethodFixedGram = "fixed-gram"
	MethodFixedHour = "fixed-hour"
)

// CostModel is the global cost policy. It is never overridden per project.
type CostModel struct {
	Model        string
	TimeCostRate float64 // cost per print-hour, used by the max model
}

// Params are the resolved pricing parameters for one computation, either
// the global settings or a project's override bundle.
type Params struct {
	Method           string
	MarkupPercentage int
	PricePerGram     float64
	PricePerHour     float64
}

// Breakdown is the full result of one pricing computation. SellingPrice is
// already rounded to cents; the other fields carry raw values.
type Breakdown struct {
	MaterialCost float64 `json:"material_cost"`
	TimeCost     float64 `json:"time_cost"`
	TotalCost    float64 `json:"total_cost"`
	SellingPrice float64 `json:"selling_price"`
	Profit       float64 `json:"profit"`
}

// DefaultCostModel mirrors the seeded settings.
func DefaultCostModel() CostModel {
	return CostModel{Model: ModelWeight, TimeCostRate: 10.00}
}

// DefaultParams mirrors the engine-side defaults used when pricing keys are
// absent from settings, and the defaults stamped onto new projects.
func DefaultParams() Params {
	return Params{
		Method:           MethodNone,
		MarkupPercentage: 50,
		PricePerGram:     0.10,
		PricePerHour:     20.00,
	}
}

// Costs computes material, time and total cost for one plate. Under the
// weight model the total is the material cost alone; under the max model it
// is the larger of material and time cost.
func Costs(grams, printTimeHours, costPerGram float64, cm CostModel) (materialCost, timeCost, totalCost float64) {
	materialCost = grams * costPerGram
	timeCost = printTimeHours * cm.TimeCostRate
	totalCost = materialCost
	if cm.Model == ModelMax {
		totalCost = math.Max(materialCost, timeCost)
	}
	return materialCost, timeCost, totalCost
}

// Quote computes the full cost/price breakdown for one plate.
//
// The selling price by method:
//   - none: 0, the operator enters a price manually
//   - markup: totalCost * (1 + markup/100)
//   - fixed-gram: grams * pricePerGram
//   - fixed-hour: printTime * pricePerHour, falling back to the markup
//     formula when printTime is 0
//
// Quote is total: unrecognized models and methods degrade to their safe
// defaults instead of failing.
func Quote(grams, printTimeHours, costPerGram float64, p Params, cm CostModel) Breakdown {
	materialCost, timeCost, totalCost := Costs(grams, printTimeHours, costPerGram, cm)

	var sellingPrice float64
	switch p.Method {
	case MethodMarkup:
		sellingPrice = markup(totalCost, p.MarkupPercentage)
	case MethodFixedGram:
		sellingPrice = grams * p.PricePerGram
	case MethodFixedHour:
		if printTimeHours > 0 {
			sellingPrice = printTimeHours * p.PricePerHour
		} else {
			sellingPrice = markup(totalCost, p.MarkupPercentage)
		}
	default:
		sellingPrice = 0
	}

	// Round to cents here and only here; every consumer of the price
	// (preview, batch, persisted price_sold) sees the same value.
	sellingPrice = RoundPrice(sellingPrice)

	return Breakdown{
		MaterialCost: materialCost,
		TimeCost:     timeCost,
		TotalCost:    totalCost,
		SellingPrice: sellingPrice,
		Profit:       sellingPrice - totalCost,
	}
}

func markup(totalCost float64, percentage int) float64 {
	return totalCost * (1 + float64(percentage)/100)
}

// RoundPrice rounds a currency amount to 2 decimal places.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
