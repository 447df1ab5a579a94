package models

import "encoding/json"

// Project applies a field-projection whitelist to a record or slice of
// records, working on the marshaled form so the projected names match
// the JSON surface exactly. Unknown field names are silently dropped; an
// empty set means "all default fields" and returns v untouched.
func Project(v interface{}, fields []string) interface{} {
	if len(fields) == 0 {
		return v
	}
	keep := make(map[string]bool, len(fields))
	for _, f := range fields {
		keep[f] = true
	}

	data, err := json.Marshal(v)
	if err != nil {
		return v
	}

	var list []map[string]interface{}
	if err := json.Unmarshal(data, &list); err == nil {
		out := make([]map[string]interface{}, len(list))
		for i, m := range list {
			out[i] = filterKeys(m, keep)
		}
		return out
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err == nil {
		return filterKeys(m, keep)
	}
	return v
}

func filterKeys(m map[string]interface{}, keep map[string]bool) map[string]interface{} {
	out := make(map[string]interface{}, len(keep))
	for k, v := range m {
		if keep[k] {
			out[k] = v
		}
	}
	return out
}
