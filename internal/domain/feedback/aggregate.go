package feedback

// CompletionRate is completed/total. Undefined (false) when a request has no
// providers; such a request can never reach completion and must not read as
// 0% or 100%.
func CompletionRate(completed, total int) (float64, bool) {
	if total == 0 {
		return 0, false
	}
	return float64(completed) / float64(total), true
}
