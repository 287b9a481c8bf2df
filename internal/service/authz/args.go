package authz

// stringArg walks a dot path through nested argument maps and returns the
// string at the end, or "" when any hop is missing or the wrong shape.
// GraphQL argument payloads arrive as untyped JSON, so every access is
// defensive.
func stringArg(args map[string]any, path ...string) string {
	var current any = args
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = m[key]
	}
	s, _ := current.(string)
	return s
}

// boolArg walks a dot path and returns the bool at the end, false when
// missing.
func boolArg(args map[string]any, path ...string) bool {
	var current any = args
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		current = m[key]
	}
	b, _ := current.(bool)
	return b
}
