package model

import (
	"math"
	"testing"
)

func TestCalculatePurchaseEstimateBasic(t *testing.T) {
	panels := []Panel{
		{Width: 23.875, Height: 35.875},
		{Width: 23.875, Height: 35.875},
		{Width: 23.875, Height: 35.875},
		{Width: 23.875, Height: 35.875},
	}
	est := CalculatePurchaseEstimate(panels, StockSize{48, 72}, 0.125, 10, 96)

	// each panel is 24 x 36 with allowance, four of them cover one 48x72 sheet exactly
	if math.Abs(est.TotalPanelArea-3456) > 1e-9 {
		t.Errorf("expected total area 3456, got %v", est.TotalPanelArea)
	}
	if est.TotalSquareFeet != 24 {
		t.Errorf("expected 24 sq ft, got %v", est.TotalSquareFeet)
	}
	if est.SheetsNeededMin != 1 {
		t.Errorf("expected 1 sheet minimum, got %d", est.SheetsNeededMin)
	}
	if est.SheetsWithWaste != 2 {
		t.Errorf("expected 2 sheets with 10%% waste, got %d", est.SheetsWithWaste)
	}
	if est.EstimatedCost != 192 {
		t.Errorf("expected cost 192, got %v", est.EstimatedCost)
	}
}

func TestCalculatePurchaseEstimateZeroSheetArea(t *testing.T) {
	panels := []Panel{{Width: 10, Height: 10}}
	est := CalculatePurchaseEstimate(panels, StockSize{}, 0, 10, 0)
	if est.SheetsNeededMin != 0 {
		t.Errorf("expected 0 sheets for zero sheet area, got %d", est.SheetsNeededMin)
	}
	if est.TotalPanelArea <= 0 {
		t.Error("expected positive total panel area even with zero sheet")
	}
}

func TestCalculatePurchaseEstimateNoPanels(t *testing.T) {
	est := CalculatePurchaseEstimate(nil, StockSize{48, 72}, 0.125, 10, 96)
	if est.SheetsNeededMin != 0 || est.SheetsWithWaste != 0 || est.EstimatedCost != 0 {
		t.Errorf("expected an empty estimate, got %+v", est)
	}
}
