package model

// ExtractedIntelligence holds the structured artifacts pulled out of a
// conversation. Each slice is an insertion-ordered set: values are unique
// (case-sensitive) and never empty strings.
type ExtractedIntelligence struct {
	BankAccounts []string `json:"bank_accounts"`
	UPIIDs       []string `json:"upi_ids"`
	PhishingURLs []string `json:"phishing_urls"`
}

// NewExtractedIntelligence returns an intelligence record with empty,
// non-nil slices so JSON encoding always emits arrays.
func NewExtractedIntelligence() ExtractedIntelligence {
	return ExtractedIntelligence{
		BankAccounts: []string{},
		UPIIDs:       []string{},
		PhishingURLs: []string{},
	}
}

// Merge unions other into the receiver, preserving insertion order and
// dropping duplicates. Merging is monotone: existing entries are never
// removed.
func (e *ExtractedIntelligence) Merge(other ExtractedIntelligence) {
	e.BankAccounts = appendUnique(e.BankAccounts, other.BankAccounts)
	e.UPIIDs = appendUnique(e.UPIIDs, other.UPIIDs)
	e.PhishingURLs = appendUnique(e.PhishingURLs, other.PhishingURLs)
}

// IsEmpty reports whether no artifacts have been collected.
func (e *ExtractedIntelligence) IsEmpty() bool {
	return len(e.BankAccounts) == 0 && len(e.UPIIDs) == 0 && len(e.PhishingURLs) == 0
}

// Clone returns a deep copy with non-nil slices.
func (e *ExtractedIntelligence) Clone() ExtractedIntelligence {
	out := NewExtractedIntelligence()
	out.BankAccounts = append(out.BankAccounts, e.BankAccounts...)
	out.UPIIDs = append(out.UPIIDs, e.UPIIDs...)
	out.PhishingURLs = append(out.PhishingURLs, e.PhishingURLs...)
	return out
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	for _, v := range src {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
