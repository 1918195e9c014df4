package wifi

import "sort"

// SortNetworks deduplicates networks by SSID and returns them in display order:
// the active network first, then descending signal strength.
//
// When an SSID appears more than once the active entry wins, otherwise the
// first occurrence is kept.
func SortNetworks(networks []Network) []Network {
	sorted := make([]Network, len(networks))
	copy(sorted, networks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.SSID != b.SSID {
			return a.SSID < b.SSID
		}
		return a.IsActive && !b.IsActive
	})

	deduped := sorted[:0]
	for i, n := range sorted {
		if i > 0 && n.SSID == deduped[len(deduped)-1].SSID {
			continue
		}
		deduped = append(deduped, n)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.IsActive != b.IsActive {
			return a.IsActive
		}
		return a.Strength > b.Strength
	})
	return deduped
}
