package sanitizer

// NormalizeStringSlice applies normalizer to every item, dropping empty
// results and repeated values.
func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

// NormalizeAddOns trims every entry and keeps all of them, blanks and
// repeats included, so validation sees exactly what was sent.
func NormalizeAddOns(addOns []string) []string {
	result := make([]string, 0, len(addOns))
	for _, a := range addOns {
		result = append(result, TrimAndNormalize(a))
	}
	return result
}

// UniqueAddOns is the form-side selection: trimmed, without blanks or
// repeats, in the order chosen.
func UniqueAddOns(addOns []string) []string {
	return NormalizeStringSlice(addOns, TrimAndNormalize)
}
