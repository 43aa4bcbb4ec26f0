package costofliving

import (
	"fmt"
	"math"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

// BaselineIndex is the national baseline cost index.
const BaselineIndex = 100.0

// defaultLocations is the built-in table. Order is significant: the
// cost-of-living suggestion picks the first qualifying entry in this order.
var defaultLocations = []types.LocationProfile{
	{ID: "San Francisco, CA", CostIndex: 179, Housing: 3400, Food: 650, Transport: 180},
	{ID: "New York, NY", CostIndex: 187, Housing: 3900, Food: 700, Transport: 130},
	{ID: "Austin, TX", CostIndex: 97, Housing: 1650, Food: 420, Transport: 120},
	{ID: "Seattle, WA", CostIndex: 150, Housing: 2500, Food: 560, Transport: 150},
	{ID: "Chicago, IL", CostIndex: 107, Housing: 1800, Food: 470, Transport: 110},
	{ID: "Boston, MA", CostIndex: 162, Housing: 2900, Food: 600, Transport: 110},
	{ID: "Denver, CO", CostIndex: 112, Housing: 1900, Food: 480, Transport: 120},
	{ID: "Los Angeles, CA", CostIndex: 166, Housing: 2900, Food: 620, Transport: 160},
	{ID: "Atlanta, GA", CostIndex: 101, Housing: 1700, Food: 450, Transport: 130},
	{ID: "Dallas, TX", CostIndex: 102, Housing: 1600, Food: 440, Transport: 140},
	{ID: "Phoenix, AZ", CostIndex: 104, Housing: 1550, Food: 430, Transport: 140},
	{ID: "Remote", CostIndex: BaselineIndex, Housing: 1500, Food: 450, Transport: 100},
}

// Table is an immutable, insertion-ordered cost-of-living table.
type Table struct {
	order []types.LocationProfile
	byID  map[string]int
}

// NewTable validates profiles and builds a table preserving their order.
func NewTable(profiles []types.LocationProfile) (*Table, error) {
	if len(profiles) == 0 {
		return nil, api.NewValidationError("locations", "table must not be empty")
	}
	t := &Table{
		order: make([]types.LocationProfile, 0, len(profiles)),
		byID:  make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		if p.ID == "" {
			return nil, api.NewValidationError("locations", "location id must not be empty")
		}
		if _, dup := t.byID[p.ID]; dup {
			return nil, api.NewValidationError("locations", fmt.Sprintf("duplicate location %q", p.ID))
		}
		for name, v := range map[string]float64{"cost_index": p.CostIndex, "housing": p.Housing, "food": p.Food, "transport": p.Transport} {
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, api.NewValidationError("locations", fmt.Sprintf("%s of %q must be a positive number", name, p.ID))
			}
		}
		t.byID[p.ID] = len(t.order)
		t.order = append(t.order, p)
	}
	return t, nil
}

// DefaultTable returns the built-in table.
func DefaultTable() *Table {
	t, err := NewTable(defaultLocations)
	if err != nil {
		panic(fmt.Sprintf("built-in cost-of-living table is invalid: %v", err))
	}
	return t
}

// Lookup returns the profile for id, or an error wrapping api.ErrUnknownLocation.
// There is no fallback index for unknown ids.
func (t *Table) Lookup(id string) (types.LocationProfile, error) {
	i, ok := t.byID[id]
	if !ok {
		return types.LocationProfile{}, fmt.Errorf("%w: %q", api.ErrUnknownLocation, id)
	}
	return t.order[i], nil
}

// Has reports whether id is in the table.
func (t *Table) Has(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// All returns a copy of the profiles in insertion order.
func (t *Table) All() []types.LocationProfile {
	out := make([]types.LocationProfile, len(t.order))
	copy(out, t.order)
	return out
}

// Convert returns the purchasing-power equivalent of amount, moved from one
// location to another: round(amount * (index(to) / index(from))).
func (t *Table) Convert(amount float64, fromID, toID string) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, api.NewValidationError("amount", "must be a non-negative number")
	}
	from, err := t.Lookup(fromID)
	if err != nil {
		return 0, err
	}
	to, err := t.Lookup(toID)
	if err != nil {
		return 0, err
	}
	return int64(Round(amount * (to.CostIndex / from.CostIndex))), nil
}

// Round rounds half up to the nearest whole unit.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}
