package costs

import (
	"github.com/shopspring/decimal"

	"github.com/careplanhq/careplan/internal/domain"
)

// Ownership is the household's housing tenure.
type Ownership string

const (
	OwnershipOwner  Ownership = "owner"
	OwnershipTenant Ownership = "tenant"
)

// HouseholdSettings are the shared housing inputs for aggregation.
type HouseholdSettings struct {
	KeepHome  bool
	Ownership Ownership
	HomeCarry decimal.Decimal
}

var two = decimal.NewFromInt(2)

// ComputeHouseholdTotal combines up to two cost plans into a household
// total and an even split. The shared home carry is counted exactly once:
// each plan's own home-carry segment is stripped and the settings amount is
// added back. A nil partner plan is numerically identical to a partner plan
// with zero cost.
//
// The split is always an even halving of the household total regardless of
// each person's individual share. That is a deliberate product
// simplification, not an income-weighted allocation.
func ComputeHouseholdTotal(primary, partner *domain.CostPlan, settings HouseholdSettings) domain.HouseholdTotal {
	primaryTotal := primary.CareOnlyTotal()
	partnerTotal := partner.CareOnlyTotal()

	homeCarry := decimal.Zero
	if settings.KeepHome {
		homeCarry = settings.HomeCarry
	}

	total := primaryTotal.Add(partnerTotal).Add(homeCarry)
	half := total.Div(two)

	return domain.HouseholdTotal{
		PrimaryTotal:   primaryTotal,
		PartnerTotal:   partnerTotal,
		HomeCarry:      homeCarry,
		HouseholdTotal: total,
		Split:          domain.HouseholdSplit{Primary: half, Partner: half},
	}
}
