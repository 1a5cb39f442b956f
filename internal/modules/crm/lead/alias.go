package lead

import "strings"

// The legacy clients send field names inconsistently (name vs full_name,
// status vs lead_status, ...). Instead of probing the table schema at
// runtime, the accepted synonyms are fixed here: canonical column name to
// the synonyms that map onto it. Unknown client fields are dropped.
var fieldAliases = map[string][]string{
	"full_name":    {"name", "fullname"},
	"phone":        {"mobile_number", "mobile", "phone_number"},
	"company_name": {"company"},
	"lead_status":  {"status"},
	"lead_source":  {"source"},
	"message":      {"notes", "comments"},
}

// canonicalFields is the writable column set for client-supplied data.
var canonicalFields = map[string]bool{
	"full_name":           true,
	"email":               true,
	"phone":               true,
	"company_name":        true,
	"message":             true,
	"lead_status":         true,
	"lead_source":         true,
	"lead_quality":        true,
	"lead_owner":          true,
	"expected_deal_value": true,
	"probability":         true,
	"is_junk":             true,
}

// synonymIndex is the inverted alias table, built once.
var synonymIndex = func() map[string]string {
	idx := make(map[string]string)
	for canonical, synonyms := range fieldAliases {
		for _, syn := range synonyms {
			idx[syn] = canonical
		}
	}
	return idx
}()

// CanonicalField resolves a client-supplied field name to its column name.
// Returns "" for fields that map to nothing.
func CanonicalField(raw string) string {
	key := normalizeKey(raw)
	if canonical, ok := synonymIndex[key]; ok {
		return canonical
	}
	if canonicalFields[key] {
		return key
	}
	return ""
}

// ResolveFields maps a raw client payload onto canonical columns, silently
// dropping unknown keys. When a canonical key and one of its synonyms both
// appear, the canonical key wins.
func ResolveFields(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		canonical := CanonicalField(key)
		if canonical == "" || canonicalFields[normalizeKey(key)] {
			continue
		}
		out[canonical] = value
	}
	for key, value := range raw {
		if canonicalFields[normalizeKey(key)] {
			out[normalizeKey(key)] = value
		}
	}
	return out
}

func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(key, " ", "_")
}
