package model

// StockMode selects how stock sizes are chosen for a run.
type StockMode string

const (
	ModeFixed     StockMode = "fixed"
	ModeAutomatic StockMode = "automatic"
)

// OptimizeSelection is the stock selection value that requests automatic mode.
const OptimizeSelection = "optimize"

// BucketKind classifies a result bucket. Every kind except BucketPacked is a
// failure bucket and carries zero quantity and zero cost.
type BucketKind string

const (
	BucketPacked        BucketKind = "packed"
	BucketInvalidStock  BucketKind = "invalid_stock"
	BucketPackingFailed BucketKind = "packing_failed"
	BucketUnfittable    BucketKind = "unfittable"
	BucketNoStock       BucketKind = "no_stock"
)

// Labels of the failure buckets.
const (
	LabelInvalidStock       = "Invalid Stock"
	LabelPackingFailed      = "Packing Failed"
	LabelUnfittable         = "Unfittable Panels"
	LabelOptimizationFailed = "Optimization Failed"
)

// Bucket is one entry of a run's result, keyed by its label: either a stock
// size that received panels or a failure marker.
type Bucket struct {
	Label          string        `json:"label"`
	Kind           BucketKind    `json:"kind"`
	Stock          StockSize     `json:"stock"`
	PanelCount     int           `json:"panel_count"`
	PhysicalSheets int           `json:"physical_sheets"`
	BillableSheets int           `json:"billable_sheets"`
	Layouts        []SheetLayout `json:"layouts"`
	Unfitted       []Panel       `json:"unfitted,omitempty"`
	Notes          []string      `json:"notes"`
}

// Failed reports whether the bucket is a failure marker.
func (b Bucket) Failed() bool {
	return b.Kind != BucketPacked
}

// Allocation is the aggregator owned by a single packing run. Buckets keep
// insertion order so results render in the order stock sizes were processed.
type Allocation struct {
	Mode    StockMode `json:"mode"`
	Buckets []Bucket  `json:"buckets"`
}

func NewAllocation(mode StockMode) *Allocation {
	return &Allocation{Mode: mode}
}

// Add records a bucket. A bucket whose label already exists is merged into
// the existing entry.
func (a *Allocation) Add(b Bucket) {
	for i := range a.Buckets {
		if a.Buckets[i].Label != b.Label {
			continue
		}
		existing := &a.Buckets[i]
		existing.PanelCount += b.PanelCount
		existing.PhysicalSheets += b.PhysicalSheets
		existing.BillableSheets += b.BillableSheets
		existing.Layouts = append(existing.Layouts, b.Layouts...)
		existing.Unfitted = append(existing.Unfitted, b.Unfitted...)
		existing.Notes = append(existing.Notes, b.Notes...)
		return
	}
	a.Buckets = append(a.Buckets, b)
}

// Bucket looks up a bucket by label.
func (a *Allocation) Bucket(label string) (Bucket, bool) {
	for _, b := range a.Buckets {
		if b.Label == label {
			return b, true
		}
	}
	return Bucket{}, false
}

// TotalSheets returns the physical sheet count across all packed buckets.
func (a *Allocation) TotalSheets() int {
	n := 0
	for _, b := range a.Buckets {
		if !b.Failed() {
			n += b.PhysicalSheets
		}
	}
	return n
}

// Failures returns the failure buckets.
func (a *Allocation) Failures() []Bucket {
	var out []Bucket
	for _, b := range a.Buckets {
		if b.Failed() {
			out = append(out, b)
		}
	}
	return out
}

// Failed reports whether the run produced any failure bucket.
func (a *Allocation) Failed() bool {
	return len(a.Failures()) > 0
}

// Layouts returns every sheet layout in bucket order.
func (a *Allocation) Layouts() []SheetLayout {
	var out []SheetLayout
	for _, b := range a.Buckets {
		out = append(out, b.Layouts...)
	}
	return out
}

// Efficiency returns the overall material usage percentage of packed sheets.
func (a *Allocation) Efficiency() float64 {
	var used, total float64
	for _, l := range a.Layouts() {
		used += l.UsedArea()
		total += l.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}
