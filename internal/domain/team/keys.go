package team

func Contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func Remove(keys []string, key string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// Dedupe keeps the first occurrence of every key and drops empty keys.
func Dedupe(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Cap dedupes keys and truncates to n.
func Cap(keys []string, n int) []string {
	out := Dedupe(keys)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func Union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return Dedupe(append(out, b...))
}

// Intersect keeps keys of a present in b, in a's order.
func Intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, k := range b {
		set[k] = struct{}{}
	}
	out := make([]string, 0, len(a))
	for _, k := range a {
		if _, ok := set[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func cloneKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	return append([]string(nil), keys...)
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}
