package revshare

import (
	"github.com/bitfsorg/armarket-go/decimal"
)

// FirstSaleShares resolves the shares written at mint.
//
// With enforcement on, platform and pool come from the first-sale cuts,
// prevOwner and creator are taken as supplied and the owner receives
// 100 - (prevOwner + creator + platform + pool). With enforcement off the
// supplied shares are used unchanged.
func FirstSaleShares(supplied BidShares, cuts PlatformCuts, enforce bool) (BidShares, error) {
	if !enforce {
		return supplied, nil
	}
	s := BidShares{
		PrevOwner: supplied.PrevOwner,
		Creator:   supplied.Creator,
		Platform:  cuts.FirstSalePlatform,
		Pool:      cuts.FirstSalePool,
	}
	owner, err := remainder(s.PrevOwner, s.Creator, s.Platform, s.Pool)
	if err != nil {
		return BidShares{}, err
	}
	s.Owner = owner
	return s, nil
}

// NextSaleShares resolves the shares written after an accepted bid.
//
// prevOwner becomes the bid's sell-on share. With enforcement on, creator,
// platform and pool come from the further-sale cuts; otherwise they keep
// their current values. The owner receives the remainder.
func NextSaleShares(current BidShares, sellOnShare decimal.Decimal, cuts PlatformCuts, enforce bool) (BidShares, error) {
	s := BidShares{
		PrevOwner: sellOnShare,
		Creator:   current.Creator,
		Platform:  current.Platform,
		Pool:      current.Pool,
	}
	if enforce {
		s.Creator = cuts.FurtherSalesCreator
		s.Platform = cuts.FurtherSalesPlatform
		s.Pool = cuts.FurtherSalesPool
	}
	owner, err := remainder(s.PrevOwner, s.Creator, s.Platform, s.Pool)
	if err != nil {
		return BidShares{}, err
	}
	s.Owner = owner
	return s, nil
}
