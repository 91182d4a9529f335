package pricing

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCostsWeightModel(t *testing.T) {
	// PLA at $0.05/g, 120g, 2.5h: material cost only under weight model
	materialCost, timeCost, totalCost := Costs(120, 2.5, 0.05, CostModel{Model: ModelWeight, TimeCostRate: 10})

	if !almostEqual(materialCost, 6.00) {
		t.Fatalf("materialCost = %v, want 6.00", materialCost)
	}
	if !almostEqual(timeCost, 25.00) {
		t.Fatalf("timeCost = %v, want 25.00", timeCost)
	}
	if !almostEqual(totalCost, 6.00) {
		t.Fatalf("totalCost = %v, want material cost 6.00 under weight model", totalCost)
	}
}

func TestCostsMaxModel(t *testing.T) {
	tests := []struct {
		name          string
		grams, hours  float64
		costPerGram   float64
		rate          float64
		wantTotalCost float64
	}{
		{"time cost dominates", 120, 2.5, 0.05, 10, 25.00},
		{"material cost dominates", 500, 1, 0.05, 10, 25.00},
		{"tie resolves to either", 200, 1, 0.05, 10, 10.00},
		{"zero time", 120, 0, 0.05, 10, 6.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			materialCost, timeCost, totalCost := Costs(tt.grams, tt.hours, tt.costPerGram, CostModel{Model: ModelMax, TimeCostRate: tt.rate})
			if !almostEqual(totalCost, tt.wantTotalCost) {
				t.Fatalf("totalCost = %v, want %v", totalCost, tt.wantTotalCost)
			}
			if totalCost < materialCost || totalCost < timeCost {
				t.Fatalf("max model total %v below material %v or time %v", totalCost, materialCost, timeCost)
			}
		})
	}
}

func TestCostsUnrecognizedModelFallsBackToWeight(t *testing.T) {
	_, _, totalCost := Costs(120, 2.5, 0.05, CostModel{Model: "bogus", TimeCostRate: 10})
	if !almostEqual(totalCost, 6.00) {
		t.Fatalf("totalCost = %v, want weight-model 6.00 for unrecognized model", totalCost)
	}
}

func TestQuoteMethods(t *testing.T) {
	weight := CostModel{Model: ModelWeight, TimeCostRate: 10}

	tests := []struct {
		name         string
		grams, hours float64
		costPerGram  float64
		params       Params
		cm           CostModel
		wantPrice    float64
	}{
		{
			name:  "none is always zero",
			grams: 120, hours: 2.5, costPerGram: 0.05,
			params: Params{Method: MethodNone, MarkupPercentage: 50},
			cm:     weight,
		},
		{
			name:  "markup 50 percent on weight cost",
			grams: 120, hours: 2.5, costPerGram: 0.05,
			params:    Params{Method: MethodMarkup, MarkupPercentage: 50},
			cm:        weight,
			wantPrice: 9.00,
		},
		{
			name:  "markup 0 percent is cost",
			grams: 120, hours: 0, costPerGram: 0.05,
			params:    Params{Method: MethodMarkup, MarkupPercentage: 0},
			cm:        weight,
			wantPrice: 6.00,
		},
		{
			name:  "markup 50 percent on max cost",
			grams: 120, hours: 2.5, costPerGram: 0.05,
			params:    Params{Method: MethodMarkup, MarkupPercentage: 50},
			cm:        CostModel{Model: ModelMax, TimeCostRate: 10},
			wantPrice: 37.50,
		},
		{
			name:  "fixed-gram ignores cost model",
			grams: 120, hours: 2.5, costPerGram: 0.05,
			params:    Params{Method: MethodFixedGram, PricePerGram: 0.20},
			cm:        CostModel{Model: ModelMax, TimeCostRate: 10},
			wantPrice: 24.00,
		},
		{
			name:  "fixed-hour uses print time",
			grams: 120, hours: 2.5, costPerGram: 0.05,
			params:    Params{Method: MethodFixedHour, PricePerHour: 20, MarkupPercentage: 50},
			cm:        weight,
			wantPrice: 50.00,
		},
		{
			name:  "fixed-hour with zero time falls back to markup",
			grams: 200, hours: 0, costPerGram: 0.05,
			params:    Params{Method: MethodFixedHour, PricePerHour: 20, MarkupPercentage: 50},
			cm:        weight,
			wantPrice: 15.00, // totalCost 10.00, markup 50%
		},
		{
			name:  "unrecognized method behaves as none",
			grams: 120, hours: 2.5, costPerGram: 0.05,
			params: Params{Method: "auction", MarkupPercentage: 50},
			cm:     weight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Quote(tt.grams, tt.hours, tt.costPerGram, tt.params, tt.cm)
			if !almostEqual(b.SellingPrice, tt.wantPrice) {
				t.Fatalf("SellingPrice = %v, want %v", b.SellingPrice, tt.wantPrice)
			}
			if !almostEqual(b.Profit, b.SellingPrice-b.TotalCost) {
				t.Fatalf("Profit = %v, want SellingPrice-TotalCost = %v", b.Profit, b.SellingPrice-b.TotalCost)
			}
		})
	}
}

func TestQuoteScenarioWeightMarkup(t *testing.T) {
	// The worked scenario: PLA 0.05/g, 120g, 2.5h, weight model, markup 50%
	b := Quote(120, 2.5, 0.05, Params{Method: MethodMarkup, MarkupPercentage: 50}, CostModel{Model: ModelWeight, TimeCostRate: 10})

	if !almostEqual(b.MaterialCost, 6.00) {
		t.Fatalf("MaterialCost = %v, want 6.00", b.MaterialCost)
	}
	if !almostEqual(b.TotalCost, 6.00) {
		t.Fatalf("TotalCost = %v, want 6.00", b.TotalCost)
	}
	if !almostEqual(b.SellingPrice, 9.00) {
		t.Fatalf("SellingPrice = %v, want 9.00", b.SellingPrice)
	}
	if !almostEqual(b.Profit, 3.00) {
		t.Fatalf("Profit = %v, want 3.00", b.Profit)
	}
}

func TestQuoteRoundsSellingPriceOnly(t *testing.T) {
	// 3g at $0.333/g, markup 10%: raw price 0.9999*1.1 = 1.09989
	b := Quote(3, 0, 0.333, Params{Method: MethodMarkup, MarkupPercentage: 10}, CostModel{Model: ModelWeight})

	if !almostEqual(b.SellingPrice, 1.10) {
		t.Fatalf("SellingPrice = %v, want 1.10", b.SellingPrice)
	}
	// material cost keeps full precision
	if !almostEqual(b.MaterialCost, 0.999) {
		t.Fatalf("MaterialCost = %v, want 0.999 unrounded", b.MaterialCost)
	}
}

func TestRoundPrice(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.234, 1.23},
		{1.236, 1.24},
		{0, 0},
		{37.5, 37.5},
		{9.999, 10.00},
	}
	for _, tt := range tests {
		if got := RoundPrice(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("RoundPrice(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
