package risk

import "math"

// standardLot is the unit count of one full FX lot.
const standardLot = 100000

// MinLot is the smallest tradable lot size (one micro lot).
const MinLot = 0.01

// LotSize computes a lot size so that hitting the stop loses riskPercent of
// the account balance.
//
// riskPercent is expressed in percent (1.0 = 1%), pipValue in price terms
// (0.0001 for EURUSD). The result is rounded to two decimals and floored at
// MinLot.
func LotSize(balance, riskPercent, stopLossPips, pipValue float64) float64 {
	if balance <= 0 || riskPercent <= 0 || stopLossPips <= 0 || pipValue <= 0 {
		return MinLot
	}
	riskAmount := balance * riskPercent / 100
	lot := riskAmount / (stopLossPips * pipValue * standardLot)
	lot = math.Round(lot*100) / 100
	if lot < MinLot {
		lot = MinLot
	}
	return lot
}
