package engine

import (
	"fmt"
	"sync"

	"github.com/piwi3910/GlassCut/internal/model"
)

// Allocate runs one packing run for a stock selection: "optimize" packs
// automatically across stocks, anything else must name a single stock size
// such as "48x72". A malformed selection produces an Invalid Stock bucket.
func (o *Optimizer) Allocate(panels []model.Panel, selectedStock string, stocks []model.StockSize) *model.Allocation {
	if selectedStock == model.OptimizeSelection {
		return o.PackAuto(panels, stocks)
	}

	stock, err := model.ParseStockSize(selectedStock)
	if err != nil {
		alloc := model.NewAllocation(model.ModeFixed)
		if len(panels) > 0 {
			alloc.Add(invalidStockBucket(panels))
		}
		return alloc
	}
	return o.PackFixed(panels, stock)
}

// PackFixed packs every panel onto one chosen stock size.
func (o *Optimizer) PackFixed(panels []model.Panel, stock model.StockSize) *model.Allocation {
	alloc := model.NewAllocation(model.ModeFixed)
	if len(panels) == 0 {
		return alloc
	}

	if !stock.Valid() {
		alloc.Add(invalidStockBucket(panels))
		return alloc
	}

	result := o.Pack(panels, stock)
	if !result.Feasible() {
		alloc.Add(packingFailedBucket(stock, result.Oversized))
		return alloc
	}
	alloc.Add(packedBucket(stock, result))
	return alloc
}

// batch is the set of panels routed to one stock size in automatic mode.
type batch struct {
	stock  model.StockSize
	panels []model.Panel
}

// PackAuto routes each panel to the first stock size it fits, walking stocks
// in the given order (smallest first), and packs each stock's share
// separately. Panels that fit no stock end up in an Unfittable bucket.
func (o *Optimizer) PackAuto(panels []model.Panel, stocks []model.StockSize) *model.Allocation {
	alloc := model.NewAllocation(model.ModeAutomatic)
	if len(panels) == 0 {
		return alloc
	}
	if len(stocks) == 0 {
		alloc.Add(model.Bucket{
			Label:    model.LabelOptimizationFailed,
			Kind:     model.BucketNoStock,
			Unfitted: append([]model.Panel(nil), panels...),
			Notes:    []string{"Error: No available stock for this glass type."},
		})
		return alloc
	}

	batches, leftover := o.partition(panels, stocks)
	results := o.packBatches(batches)

	for i, b := range batches {
		r := results[i]
		if !r.Feasible() {
			alloc.Add(packingFailedBucket(b.stock, r.Oversized))
			continue
		}
		if r.SheetCount > 0 {
			alloc.Add(packedBucket(b.stock, r))
		}
	}

	if len(leftover) > 0 {
		alloc.Add(model.Bucket{
			Label:    model.LabelUnfittable,
			Kind:     model.BucketUnfittable,
			Unfitted: leftover,
			Notes:    []string{fmt.Sprintf("Error: %d panel(s) are too large for any available stock.", len(leftover))},
		})
	}
	return alloc
}

// partition assigns panels to stock sizes greedily. Each panel goes to the
// first stock it fits; panels that fit none are returned as leftover.
func (o *Optimizer) partition(panels []model.Panel, stocks []model.StockSize) ([]batch, []model.Panel) {
	pool := panels
	var batches []batch
	for _, stock := range stocks {
		if len(pool) == 0 {
			break
		}
		var fits, tooLarge []model.Panel
		for _, p := range pool {
			if stock.Valid() && o.Fits(p, stock) {
				fits = append(fits, p)
			} else {
				tooLarge = append(tooLarge, p)
			}
		}
		if len(fits) > 0 {
			batches = append(batches, batch{stock: stock, panels: fits})
		}
		pool = tooLarge
	}
	return batches, append([]model.Panel(nil), pool...)
}

// packBatches packs every batch, concurrently when ParallelBuckets is set.
// Batches share no state so results are identical either way.
func (o *Optimizer) packBatches(batches []batch) []model.PackingResult {
	results := make([]model.PackingResult, len(batches))
	if !o.Settings.ParallelBuckets || len(batches) < 2 {
		for i, b := range batches {
			results[i] = o.Pack(b.panels, b.stock)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, b := range batches {
		wg.Add(1)
		go func(i int, b batch) {
			defer wg.Done()
			results[i] = o.Pack(b.panels, b.stock)
		}(i, b)
	}
	wg.Wait()
	return results
}

func packedBucket(stock model.StockSize, r model.PackingResult) model.Bucket {
	panelCount := r.PlacedCount()
	return model.Bucket{
		Label:          stock.Label(),
		Kind:           model.BucketPacked,
		Stock:          stock,
		PanelCount:     panelCount,
		PhysicalSheets: r.SheetCount,
		BillableSheets: r.SheetCount,
		Layouts:        r.Layouts,
		Notes:          []string{fmt.Sprintf("Packed %d panels onto %d sheets.", panelCount, r.SheetCount)},
	}
}

// invalidStockBucket marks every panel of a run whose stock selection is unusable.
func invalidStockBucket(panels []model.Panel) model.Bucket {
	return model.Bucket{
		Label:    model.LabelInvalidStock,
		Kind:     model.BucketInvalidStock,
		Unfitted: append([]model.Panel(nil), panels...),
		Notes:    []string{"Error: Invalid stock size selected."},
	}
}

func packingFailedBucket(stock model.StockSize, oversized []model.Panel) model.Bucket {
	return model.Bucket{
		Label:    model.LabelPackingFailed,
		Kind:     model.BucketPackingFailed,
		Stock:    stock,
		Unfitted: oversized,
		Notes: []string{fmt.Sprintf("Error: Some panels are too large for the selected %s\"x%s\" stock.",
			trimFloat(stock.Width), trimFloat(stock.Height))},
	}
}
