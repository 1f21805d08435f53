package services

import (
	"parcelflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// sameRegionRate is the rider's share when pickup and drop-off are in one region.
	sameRegionRate = decimal.RequireFromString("0.8")
	// crossRegionRate is the rider's share when the parcel is trunked between regions.
	crossRegionRate = decimal.RequireFromString("0.3")
)

// EarningCalculator computes a rider's payable amount for a completed delivery.
//
// Business rules:
//   - Same sender and receiver region: cost × 0.8
//   - Different regions: cost × 0.3
//   - Regions compare case-insensitively after trimming
//   - Results are exact decimals rounded half-even to cents
//
// Example usage:
//
//	calc := services.NewEarningCalculator()
//	cost, _ := kernel.MoneyFromString("100")
//	a, _ := kernel.NewRegion("A")
//	earning := calc.ComputeEarning(cost, a, a) // 80.00
//
// EarningCalculator is stateless and safe for concurrent use.
type EarningCalculator struct{}

// NewEarningCalculator creates a new EarningCalculator instance.
func NewEarningCalculator() EarningCalculator {
	return EarningCalculator{}
}

// ComputeEarning implements parcel.EarningPolicy.
func (EarningCalculator) ComputeEarning(cost kernel.Money, senderRegion, receiverRegion kernel.Region) kernel.Money {
	if senderRegion.IsSame(receiverRegion) {
		return cost.MulRate(sameRegionRate)
	}
	return cost.MulRate(crossRegionRate)
}
