package services

// MergeHouseOptions appends the options not yet present, keeping the
// first-seen order and dropping duplicates on either side.
func MergeHouseOptions(existing, added []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(added))
	merged := make([]string, 0, len(existing)+len(added))
	for _, list := range [][]string{existing, added} {
		for _, opt := range list {
			if _, ok := seen[opt]; ok {
				continue
			}
			seen[opt] = struct{}{}
			merged = append(merged, opt)
		}
	}
	return merged
}

// RemoveHouseOption drops every occurrence of option.
func RemoveHouseOption(existing []string, option string) []string {
	kept := make([]string, 0, len(existing))
	for _, opt := range existing {
		if opt != option {
			kept = append(kept, opt)
		}
	}
	return kept
}
