package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwaba/listing-service/internal/listing/domain"
)

func findClause(t *testing.T, q domain.ListingQuery, field string, op domain.ClauseOp) (domain.Clause, bool) {
	t.Helper()
	for _, c := range q.Clauses {
		if c.Field == field && c.Op == op {
			return c, true
		}
	}
	return domain.Clause{}, false
}

func TestCompileDefaultCriteria(t *testing.T) {
	q := Compile(domain.DefaultFilter())

	// Only the fixed published clause; everything else is unconstrained.
	require.Len(t, q.Clauses, 1)
	assert.Equal(t, domain.FieldStatus, q.Clauses[0].Field)
	assert.Equal(t, domain.OpEq, q.Clauses[0].Op)
	assert.Equal(t, string(domain.StatusPublished), q.Clauses[0].Value)

	assert.Equal(t, domain.FieldCreatedAt, q.SortField)
	assert.True(t, q.SortDesc)
	assert.Equal(t, int64(ResultLimit), q.Limit)
}

func TestCompileFullCriteria(t *testing.T) {
	q := Compile(domain.FilterCriteria{
		ListingKind:   domain.ListingKindRental,
		PropertyKind:  domain.PropertyKindVilla,
		Commune:       "  Cocody ",
		PriceMin:      "300 000",
		PriceMax:      "1.2k",
		BedroomsMin:   "2",
		BathroomsMin:  "1",
		FurnishedOnly: true,
		ParkingOnly:   true,
		ACOnly:        true,
	})

	c, ok := findClause(t, q, domain.FieldListingKind, domain.OpEq)
	require.True(t, ok)
	assert.Equal(t, "rental", c.Value)

	c, ok = findClause(t, q, domain.FieldCommune, domain.OpContains)
	require.True(t, ok)
	assert.Equal(t, "Cocody", c.Value, "commune is trimmed before matching")

	c, ok = findClause(t, q, domain.FieldPriceXOF, domain.OpGte)
	require.True(t, ok)
	assert.Equal(t, int64(300000), c.Value)

	c, ok = findClause(t, q, domain.FieldPriceXOF, domain.OpLte)
	require.True(t, ok)
	assert.Equal(t, int64(12000), c.Value)

	c, ok = findClause(t, q, domain.FieldBedrooms, domain.OpGte)
	require.True(t, ok)
	assert.Equal(t, 2, c.Value)

	for _, field := range []string{domain.FieldFurnished, domain.FieldHasParking, domain.FieldHasAC} {
		c, ok = findClause(t, q, field, domain.OpEq)
		require.True(t, ok, field)
		assert.Equal(t, true, c.Value)
	}
}

func TestCompileAbsentNumbersAddNoClause(t *testing.T) {
	q := Compile(domain.FilterCriteria{
		ListingKind:  domain.ListingKindAny,
		PropertyKind: domain.PropertyKindAny,
		PriceMin:     "n/a",
		PriceMax:     "",
		BedroomsMin:  "   ",
	})
	_, ok := findClause(t, q, domain.FieldPriceXOF, domain.OpGte)
	assert.False(t, ok, "unparseable min must not become a zero bound")
	_, ok = findClause(t, q, domain.FieldPriceXOF, domain.OpLte)
	assert.False(t, ok)
	_, ok = findClause(t, q, domain.FieldBedrooms, domain.OpGte)
	assert.False(t, ok)
}

func TestCompileUncheckedFlagsNeverFilterNegatively(t *testing.T) {
	q := Compile(domain.DefaultFilter())
	for _, field := range []string{domain.FieldFurnished, domain.FieldHasParking, domain.FieldHasAC} {
		_, ok := findClause(t, q, field, domain.OpEq)
		assert.False(t, ok, "%s must stay unconstrained when the flag is off", field)
	}
}

// matches is a reference evaluator for a clause set over a listing, just
// enough to check compiled semantics without a store.
func matches(l *domain.Listing, clauses []domain.Clause) bool {
	fields := map[string]interface{}{
		domain.FieldStatus:      string(l.Status),
		domain.FieldListingKind: string(l.ListingKind),
		domain.FieldPriceXOF:    l.PriceXOF,
		domain.FieldBedrooms:    l.Bedrooms,
	}
	for _, c := range clauses {
		v, known := fields[c.Field]
		if !known {
			continue
		}
		switch c.Op {
		case domain.OpEq:
			if v != c.Value {
				return false
			}
		case domain.OpGte:
			if asInt64(v) < asInt64(c.Value) {
				return false
			}
		case domain.OpLte:
			if asInt64(v) > asInt64(c.Value) {
				return false
			}
		}
	}
	return true
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

func TestCompileContradictoryRangeMatchesNothing(t *testing.T) {
	q := Compile(domain.FilterCriteria{
		ListingKind:  domain.ListingKindAny,
		PropertyKind: domain.PropertyKindAny,
		PriceMin:     "1 200 000",
		PriceMax:     "300 000",
	})

	// Both bounds are compiled as-is, never auto-corrected.
	min, ok := findClause(t, q, domain.FieldPriceXOF, domain.OpGte)
	require.True(t, ok)
	assert.Equal(t, int64(1200000), min.Value)
	max, ok := findClause(t, q, domain.FieldPriceXOF, domain.OpLte)
	require.True(t, ok)
	assert.Equal(t, int64(300000), max.Value)

	for _, price := range []int64{0, 299999, 300000, 750000, 1200000, 5000000} {
		l := &domain.Listing{Status: domain.StatusPublished, PriceXOF: price}
		assert.False(t, matches(l, q.Clauses), "price %d must not match a contradictory range", price)
	}
}

func TestSessionEditDoesNotTouchApplied(t *testing.T) {
	s := NewSession()
	s.Edit(func(c *domain.FilterCriteria) {
		c.Commune = "Marcory"
		c.PriceMax = "500k"
	})

	assert.Equal(t, "Marcory", s.Draft().Commune)
	assert.Equal(t, domain.DefaultFilter(), s.Applied(), "editing must not change the applied state")
}

func TestSessionApplyPromotesDraft(t *testing.T) {
	s := NewSession()
	s.Edit(func(c *domain.FilterCriteria) { c.FurnishedOnly = true })

	applied := s.Apply()
	assert.True(t, applied.FurnishedOnly)
	assert.Equal(t, applied, s.Applied())
}

func TestSessionResetRestoresDefault(t *testing.T) {
	s := NewSession()
	s.Edit(func(c *domain.FilterCriteria) {
		c.ListingKind = domain.ListingKindSale
		c.PriceMin = "300k"
		c.ACOnly = true
	})
	s.Apply()

	got := s.Reset()
	assert.Equal(t, domain.DefaultFilter(), got)
	assert.Equal(t, domain.DefaultFilter(), s.Draft())
	assert.Equal(t, domain.DefaultFilter(), s.Applied())
}
