package domain

// FilterCriteria mirrors the search form. Numeric fields stay raw strings:
// the user types loosely formatted amounts ("300 000", "1.2k") and parsing
// happens at compile time, so an unparseable field compiles to no constraint
// instead of a zero bound.
type FilterCriteria struct {
	ListingKind   ListingKind
	PropertyKind  PropertyKind
	Commune       string
	PriceMin      string
	PriceMax      string
	BedroomsMin   string
	BathroomsMin  string
	FurnishedOnly bool
	ParkingOnly   bool
	ACOnly        bool
}

// DefaultFilter is the all-permissive state the form starts in and resets to.
func DefaultFilter() FilterCriteria {
	return FilterCriteria{
		ListingKind:  ListingKindAny,
		PropertyKind: PropertyKindAny,
	}
}

type ClauseOp string

const (
	OpEq       ClauseOp = "eq"
	OpGte      ClauseOp = "gte"
	OpLte      ClauseOp = "lte"
	OpContains ClauseOp = "contains" // case-insensitive substring
)

// Clause is one conjunctive predicate against the listing store. The store
// adapter translates clauses into its native query form.
type Clause struct {
	Field string
	Op    ClauseOp
	Value interface{}
}

// ListingQuery is a compiled filter: a conjunctive clause set plus sort and a
// hard result cap.
type ListingQuery struct {
	Clauses   []Clause
	SortField string
	SortDesc  bool
	Limit     int64
}

// Store field names shared by the compiler and the store adapters.
const (
	FieldStatus       = "status"
	FieldListingKind  = "listing_kind"
	FieldPropertyKind = "property_kind"
	FieldCommune      = "commune"
	FieldPriceXOF     = "price_xof"
	FieldBedrooms     = "bedrooms"
	FieldBathrooms    = "bathrooms"
	FieldFurnished    = "furnished"
	FieldHasParking   = "has_parking"
	FieldHasAC        = "has_ac"
	FieldCreatedAt    = "created_at"
)
