package search

// NoResultsError signals that a filter set matched nothing. It is retryable:
// the dialogue layer feeds the guidance back to the assistant instead of
// presenting an empty table as a normal result.
type NoResultsError struct{}

func (e *NoResultsError) Error() string {
	return "no properties matched the given filters"
}

// Guidance is the retry hint consumed by the dialogue layer.
func (e *NoResultsError) Guidance() string {
	return "No properties matched these filters. Suggest relaxing some criteria or ask the user to clarify what they are looking for."
}
