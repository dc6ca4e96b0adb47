package finding

import "sort"

// SortBySeverity orders findings by severity rank (CRITICAL first) with the
// file path as the secondary ascending key. The sort is stable, so findings
// sharing both keys keep their incoming order. This is the final, reportable
// order; emitters must not re-sort.
func SortBySeverity(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := findings[i].Severity.Rank(), findings[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return findings[i].File < findings[j].File
	})
}
