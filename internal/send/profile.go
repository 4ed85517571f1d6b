// Package send composes outgoing batches from a finalized recipient plan.
// It owns the sender system profiles and the batching constraint handed
// down by the reconciliation engine; it does not open network connections
// or format wire messages.
package send

import "fmt"

// ProfileKind identifies a sender system variant. The set is closed: every
// variant has exactly one configuration record, resolved once per send and
// threaded explicitly into composition. There is no process-wide mutable
// profile state, so concurrent sends cannot leak configuration across
// sessions.
type ProfileKind string

const (
	// ProfileStandard is the default transactional sender.
	ProfileStandard ProfileKind = "standard"

	// ProfileBulk is the high-volume sender with larger batch windows.
	ProfileBulk ProfileKind = "bulk"

	// ProfileSandbox routes nothing externally; used for dry runs.
	ProfileSandbox ProfileKind = "sandbox"
)

// Profile is the resolved configuration record for one sender variant.
type Profile struct {
	Kind         ProfileKind `json:"kind"`
	FromAddress  string      `json:"fromAddress"`
	MaxBatchSize int         `json:"maxBatchSize"`
	DryRun       bool        `json:"dryRun"`
}

// ProfileConfig supplies the per-variant knobs from application config.
type ProfileConfig struct {
	FromAddress   string
	BulkBatchSize int
}

// ResolveProfile returns the configuration record for a variant. Unknown
// identifiers are rejected rather than silently mapped to a default.
func ResolveProfile(kind ProfileKind, cfg ProfileConfig) (Profile, error) {
	switch kind {
	case ProfileStandard:
		return Profile{
			Kind:         ProfileStandard,
			FromAddress:  cfg.FromAddress,
			MaxBatchSize: 10,
		}, nil
	case ProfileBulk:
		size := cfg.BulkBatchSize
		if size <= 0 {
			size = 50
		}
		return Profile{
			Kind:         ProfileBulk,
			FromAddress:  cfg.FromAddress,
			MaxBatchSize: size,
		}, nil
	case ProfileSandbox:
		return Profile{
			Kind:         ProfileSandbox,
			FromAddress:  cfg.FromAddress,
			MaxBatchSize: 10,
			DryRun:       true,
		}, nil
	default:
		return Profile{}, fmt.Errorf("unknown sender profile: %q", kind)
	}
}
