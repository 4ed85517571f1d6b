package core

import "strings"

// Size window for the mid-size PDF hazard, inclusive on both ends.
const (
	pdfHazardMinBytes = 1 << 20 // 1 MiB
	pdfHazardMaxBytes = 2 << 20 // 2 MiB
)

// BatchPolicy is the global batching constraint handed to the send engine.
// When SingleRecipient is set the engine must cap its outgoing batch size
// at one recipient per send call.
type BatchPolicy struct {
	SingleRecipient bool   `json:"singleRecipient"`
	Reason          string `json:"reason,omitempty"`
}

// DeriveBatchPolicy scans every entry across every bucket of the index.
// An entry is hazardous when it looks like a PDF (declared content type
// contains "pdf", or the filename ends in ".pdf", both case-insensitive)
// and its size falls in [1 MiB, 2 MiB]. One hazardous entry is enough:
// several mid-size PDFs batched into one send can breach provider-side
// total-message-size limits, and the send engine batches recipients
// together before per-call sizes are re-checked. The flag is deliberately
// global, not per-recipient.
func DeriveBatchPolicy(index *AttachmentIndex) BatchPolicy {
	for _, key := range index.Keys() {
		for _, entry := range index.Bucket(key) {
			if isPDF(entry) && entry.SizeBytes >= pdfHazardMinBytes && entry.SizeBytes <= pdfHazardMaxBytes {
				return BatchPolicy{
					SingleRecipient: true,
					Reason:          "mid-size PDF attachment detected; sending one recipient per call",
				}
			}
		}
	}
	return BatchPolicy{}
}

func isPDF(entry AttachmentEntry) bool {
	if strings.Contains(strings.ToLower(entry.ContentType), "pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(entry.Filename), ".pdf")
}
