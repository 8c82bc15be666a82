package validation

// AllPresent reports whether every value in the submitted field mapping is
// both defined and non-empty. The check is deliberately permissive about
// type and strict about absence: only a JSON null or an empty string counts
// as missing, so boolean false, numeric zero and empty lists all pass.
// An empty mapping is vacuously complete.
func AllPresent(fields map[string]interface{}) bool {
	for _, value := range fields {
		if value == nil {
			return false
		}
		if s, ok := value.(string); ok && s == "" {
			return false
		}
	}
	return true
}
