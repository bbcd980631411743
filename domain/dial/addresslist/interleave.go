// Package addresslist holds the pure, allocation-only candidate reordering rules
// from RFC 8305: interleave by family, pop a batch, remove by address, and
// promote a bare sockaddr into a one-element candidate list. None of these
// functions perform I/O or block.
package addresslist

import "racetcp/domain/dial"

// Interleave groups addrs by address family, preserving first-seen family order
// and each family's relative order, then emits up to firstFamilyCount-1 extra
// addresses from the first-seen family before round-robining one address per
// family until every input is placed. firstFamilyCount==1 is a pure round-robin;
// firstFamilyCount==0 is a no-op copy. The result is always a permutation of
// addrs.
func Interleave(addrs []dial.AddrCandidate, firstFamilyCount int) []dial.AddrCandidate {
	if firstFamilyCount <= 0 || len(addrs) == 0 {
		out := make([]dial.AddrCandidate, len(addrs))
		copy(out, addrs)
		return out
	}

	families, buckets := bucketize(addrs)

	out := make([]dial.AddrCandidate, 0, len(addrs))
	head := firstFamilyCount - 1
	first := families[0]
	for head > 0 && len(buckets[first]) > 0 {
		out = append(out, buckets[first][0])
		buckets[first] = buckets[first][1:]
		head--
	}

	for remaining(buckets) {
		for _, f := range families {
			if len(buckets[f]) == 0 {
				continue
			}
			out = append(out, buckets[f][0])
			buckets[f] = buckets[f][1:]
		}
	}

	return out
}

// bucketize splits addrs into per-family queues, recording first-seen family
// order.
func bucketize(addrs []dial.AddrCandidate) ([]dial.Family, map[dial.Family][]dial.AddrCandidate) {
	var order []dial.Family
	buckets := make(map[dial.Family][]dial.AddrCandidate)
	for _, a := range addrs {
		if _, ok := buckets[a.Family]; !ok {
			order = append(order, a.Family)
		}
		buckets[a.Family] = append(buckets[a.Family], a)
	}
	return order, buckets
}

func remaining(buckets map[dial.Family][]dial.AddrCandidate) bool {
	for _, b := range buckets {
		if len(b) > 0 {
			return true
		}
	}
	return false
}
