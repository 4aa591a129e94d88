package enums

import "fmt"

// SyncStatus records the outcome of the best-effort core API write for a
// delivery record. A record is created locally first and the remote result is
// annotated afterwards, so UIs can mark unsynced shipments.
type SyncStatus string

const (
	// SyncStatusSynced means the core API accepted the record and its
	// identifiers are authoritative.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusLocalOnly means the remote write failed and the record exists
	// only in this service's store, under locally generated identifiers.
	SyncStatusLocalOnly SyncStatus = "local_only"
)

var validSyncStatuses = []SyncStatus{
	SyncStatusSynced,
	SyncStatusLocalOnly,
}

// String implements fmt.Stringer.
func (s SyncStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SyncStatus.
func (s SyncStatus) IsValid() bool {
	for _, candidate := range validSyncStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSyncStatus converts raw input into a SyncStatus.
func ParseSyncStatus(value string) (SyncStatus, error) {
	for _, candidate := range validSyncStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sync status %q", value)
}
