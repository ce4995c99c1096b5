package market

import "github.com/newsfx/trader/sentiment"

// Expand enumerates tradable pair codes for the affected currencies. Each
// affected currency is paired with every other major, affected currency
// first, for both LONG and SHORT: the direction rides on the order intent,
// not on the instrument name. Duplicates across multiple affected
// currencies are suppressed; first-appearance order is preserved.
func Expand(affected []string, sig sentiment.Signal) []string {
	if len(affected) == 0 {
		return nil
	}
	_ = sig // naming convention is direction-independent

	var pairs []string
	seen := make(map[string]bool)
	for _, cur := range affected {
		for _, other := range Majors {
			if cur == other {
				continue
			}
			pair := cur + other
			if !seen[pair] {
				seen[pair] = true
				pairs = append(pairs, pair)
			}
		}
	}
	return pairs
}

// ExpandFiltered expands and then keeps only pairs present in tradable,
// truncating to at most max entries to bound order volume per event. A nil
// or empty tradable set yields an empty result rather than an error.
func ExpandFiltered(affected []string, sig sentiment.Signal, tradable map[string]bool, max int) []string {
	var out []string
	for _, pair := range Expand(affected, sig) {
		if !tradable[pair] {
			continue
		}
		out = append(out, pair)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// CapByGroup bounds how many selected pairs may share a currency. Pairs are
// accepted greedily in input order; a pair is skipped when either of its
// legs already appears in maxPerCurrency accepted pairs. maxPerCurrency <= 0
// disables the cap.
func CapByGroup(pairs []string, maxPerCurrency int) []string {
	if maxPerCurrency <= 0 {
		return pairs
	}
	counts := make(map[string]int)
	var out []string
	for _, pair := range pairs {
		base, quote := Base(pair), Quote(pair)
		if counts[base] >= maxPerCurrency || counts[quote] >= maxPerCurrency {
			continue
		}
		counts[base]++
		counts[quote]++
		out = append(out, pair)
	}
	return out
}
