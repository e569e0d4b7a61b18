package services

// DuplicateDetector finds tracking codes that occur more than once in a
// list. The invoice aggregator runs it over the concatenation of parcel
// refs during a merge: a parcel appearing on two source invoices is a
// billing anomaly that must stay visible.
type DuplicateDetector struct{}

// NewDuplicateDetector creates a DuplicateDetector.
func NewDuplicateDetector() DuplicateDetector {
	return DuplicateDetector{}
}

// Detect returns the codes with multiplicity greater than one, in
// first-seen order, with each duplicate reported once. A list without
// repeats yields an empty (non-nil) result. Runs in O(n).
func (d DuplicateDetector) Detect(codes []string) []string {
	counts := make(map[string]int, len(codes))
	for _, code := range codes {
		counts[code]++
	}

	duplicates := make([]string, 0)
	reported := make(map[string]bool)
	for _, code := range codes {
		if counts[code] > 1 && !reported[code] {
			duplicates = append(duplicates, code)
			reported[code] = true
		}
	}

	return duplicates
}
