package core

import "testing"

func TestDeriveBatchPolicy(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		sizeBytes   int64
		want        bool
	}{
		{
			name:        "mid-size declared pdf triggers",
			filename:    "report.pdf",
			contentType: "application/pdf",
			sizeBytes:   1_500_000,
			want:        true,
		},
		{
			name:        "small pdf does not trigger",
			filename:    "report.pdf",
			contentType: "application/pdf",
			sizeBytes:   500_000,
			want:        false,
		},
		{
			name:        "pdf suffix without declared type triggers",
			filename:    "report.pdf",
			contentType: "",
			sizeBytes:   1_200_000,
			want:        true,
		},
		{
			name:        "lower bound inclusive",
			filename:    "report.pdf",
			contentType: "application/pdf",
			sizeBytes:   1_048_576,
			want:        true,
		},
		{
			name:        "upper bound inclusive",
			filename:    "report.pdf",
			contentType: "application/pdf",
			sizeBytes:   2_097_152,
			want:        true,
		},
		{
			name:        "just above upper bound",
			filename:    "report.pdf",
			contentType: "application/pdf",
			sizeBytes:   2_097_153,
			want:        false,
		},
		{
			name:        "just below lower bound",
			filename:    "report.pdf",
			contentType: "application/pdf",
			sizeBytes:   1_048_575,
			want:        false,
		},
		{
			name:        "mid-size png does not trigger",
			filename:    "photo.png",
			contentType: "image/png",
			sizeBytes:   1_500_000,
			want:        false,
		},
		{
			name:        "content type match is case-insensitive substring",
			filename:    "scan.bin",
			contentType: "Application/PDF; charset=binary",
			sizeBytes:   1_100_000,
			want:        true,
		},
		{
			name:        "filename match is case-insensitive",
			filename:    "REPORT.PDF",
			contentType: "",
			sizeBytes:   1_100_000,
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewAttachmentIndex()
			idx.Ingest([]File{
				memFile{name: tt.filename, data: "x", size: tt.sizeBytes},
			}, map[string]string{tt.filename: tt.contentType})

			got := DeriveBatchPolicy(idx)
			if got.SingleRecipient != tt.want {
				t.Errorf("SingleRecipient = %v, want %v", got.SingleRecipient, tt.want)
			}
		})
	}
}

func TestDeriveBatchPolicy_OneHazardAmongMany(t *testing.T) {
	idx := NewAttachmentIndex()
	idx.Ingest([]File{
		memFile{name: "a.png", data: "x", size: 10},
		memFile{name: "b.txt", data: "x", size: 20},
		memFile{name: "c.pdf", data: "x", size: 1_500_000},
	}, nil)

	if got := DeriveBatchPolicy(idx); !got.SingleRecipient {
		t.Errorf("SingleRecipient = false, want true when any single entry is hazardous")
	}
}

func TestDeriveBatchPolicy_EmptyIndex(t *testing.T) {
	if got := DeriveBatchPolicy(NewAttachmentIndex()); got.SingleRecipient {
		t.Errorf("SingleRecipient = true for empty index, want false")
	}
}
