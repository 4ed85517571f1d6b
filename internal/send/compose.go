package send

import (
	"mailmerge/backend/internal/core"
)

// Batch is one outgoing send call: the recipients it covers and the
// attachments each of them carries.
type Batch struct {
	Recipients []core.RecipientPlan `json:"recipients"`
}

// Plan is the composed output handed back to the operator: the batches in
// send order plus the profile and policy they were composed under.
type Plan struct {
	Profile Profile          `json:"profile"`
	Policy  core.BatchPolicy `json:"policy"`
	Batches []Batch          `json:"batches"`
}

// Compose splits the per-recipient plan into batches. The profile's
// MaxBatchSize caps each batch; when the policy restricts to a single
// recipient per call the cap drops to one regardless of profile. Recipient
// order within and across batches follows the table's row order.
func Compose(recipients []core.RecipientPlan, policy core.BatchPolicy, profile Profile) Plan {
	capacity := profile.MaxBatchSize
	if capacity <= 0 {
		capacity = 1
	}
	if policy.SingleRecipient {
		capacity = 1
	}

	plan := Plan{Profile: profile, Policy: policy}
	for start := 0; start < len(recipients); start += capacity {
		end := start + capacity
		if end > len(recipients) {
			end = len(recipients)
		}
		plan.Batches = append(plan.Batches, Batch{Recipients: recipients[start:end]})
	}

	return plan
}

// RecipientCount returns the total number of recipients across batches.
func (p Plan) RecipientCount() int {
	n := 0
	for _, b := range p.Batches {
		n += len(b.Recipients)
	}
	return n
}

// AttachmentCount returns the total number of attachments across batches.
func (p Plan) AttachmentCount() int {
	n := 0
	for _, b := range p.Batches {
		for _, r := range b.Recipients {
			n += len(r.Attachments)
		}
	}
	return n
}
