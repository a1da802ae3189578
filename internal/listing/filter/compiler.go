package filter

import (
	"strings"

	"github.com/akwaba/listing-service/internal/listing/domain"
)

// ResultLimit caps every compiled query. The result page shows at most this
// many cards; there is no pagination beyond it.
const ResultLimit = 24

// Compile translates applied criteria into a conjunctive clause set plus the
// fixed published-only, newest-first, capped shape every search shares.
// Compilation is pure: no query is issued here.
//
// Each clause is guarded by its own "no constraint" default. Absent or
// unparseable numeric fields add no clause; an unchecked flag never filters
// negatively. A contradictory price range (min > max) compiles to both bounds
// and legitimately matches nothing.
func Compile(c domain.FilterCriteria) domain.ListingQuery {
	q := domain.ListingQuery{
		SortField: domain.FieldCreatedAt,
		SortDesc:  true,
		Limit:     ResultLimit,
	}
	q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldStatus, Op: domain.OpEq, Value: string(domain.StatusPublished)})

	if c.ListingKind != domain.ListingKindAny && c.ListingKind != "" {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldListingKind, Op: domain.OpEq, Value: string(c.ListingKind)})
	}
	if c.PropertyKind != domain.PropertyKindAny && c.PropertyKind != "" {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldPropertyKind, Op: domain.OpEq, Value: string(c.PropertyKind)})
	}
	if commune := strings.TrimSpace(c.Commune); commune != "" {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldCommune, Op: domain.OpContains, Value: commune})
	}
	if min, ok := ParseAmount(c.PriceMin); ok {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldPriceXOF, Op: domain.OpGte, Value: min})
	}
	if max, ok := ParseAmount(c.PriceMax); ok {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldPriceXOF, Op: domain.OpLte, Value: max})
	}
	if n, ok := ParseCount(c.BedroomsMin); ok {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldBedrooms, Op: domain.OpGte, Value: n})
	}
	if n, ok := ParseCount(c.BathroomsMin); ok {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldBathrooms, Op: domain.OpGte, Value: n})
	}
	if c.FurnishedOnly {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldFurnished, Op: domain.OpEq, Value: true})
	}
	if c.ParkingOnly {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldHasParking, Op: domain.OpEq, Value: true})
	}
	if c.ACOnly {
		q.Clauses = append(q.Clauses, domain.Clause{Field: domain.FieldHasAC, Op: domain.OpEq, Value: true})
	}
	return q
}
