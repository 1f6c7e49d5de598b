package domain

// DispatchMode selects which groups a batch refresh visits.
// Construct with AllGroups or SingleGroup.
type DispatchMode struct {
	single bool
	key    GroupKey
}

// AllGroups visits every group in the registry.
func AllGroups() DispatchMode {
	return DispatchMode{}
}

// SingleGroup visits only the group with the given key.
func SingleGroup(key GroupKey) DispatchMode {
	return DispatchMode{single: true, key: key}
}

// IsAll returns true for AllGroups.
func (m DispatchMode) IsAll() bool {
	return !m.single
}

// Key returns the selected group key and true for SingleGroup.
func (m DispatchMode) Key() (GroupKey, bool) {
	return m.key, m.single
}

// String returns a short description of the mode.
func (m DispatchMode) String() string {
	if m.single {
		return "group " + m.key.String()
	}
	return "all groups"
}

// OutcomeStatus is the result class of one refresh call.
type OutcomeStatus int

const (
	// OutcomeSuccess means the remote side accepted the refresh request.
	OutcomeSuccess OutcomeStatus = iota
	// OutcomeFailure covers every other response, including transport errors.
	OutcomeFailure
)

// String returns the string representation of the status.
func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s OutcomeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// RefreshOutcome is what one refresh call produced.
// The transport status is diagnostic payload, not a typed error.
type RefreshOutcome struct {
	Status OutcomeStatus `json:"status"`
	// StatusCode is the HTTP status; 0 when the request never got a response.
	StatusCode int `json:"status_code"`
	// Detail carries the transport error or response text for failures.
	Detail string `json:"detail,omitempty"`
}

// Success builds a successful outcome.
func Success(statusCode int) RefreshOutcome {
	return RefreshOutcome{Status: OutcomeSuccess, StatusCode: statusCode}
}

// Failure builds a failed outcome.
func Failure(statusCode int, detail string) RefreshOutcome {
	return RefreshOutcome{Status: OutcomeFailure, StatusCode: statusCode, Detail: detail}
}

// Succeeded returns true for OutcomeSuccess.
func (o RefreshOutcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}

// RefreshResult ties an outcome to the dataset and company it was issued for.
type RefreshResult struct {
	// RunID identifies the dispatch run the result belongs to.
	RunID      string         `json:"run_id"`
	GroupKey   GroupKey       `json:"group_id"`
	ResourceID string         `json:"dataset_id"`
	Outcome    RefreshOutcome `json:"outcome"`
}
