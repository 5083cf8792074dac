package records

import (
	"strings"
	"testing"
	"time"

	"github.com/dentalcare/clinic/internal/platform/clock"
)

func TestEncodeAttachment(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(now)

	f := EncodeAttachment(clk, "invoice.pdf", "application/pdf", []byte("hello"))

	if f.ID == "" {
		t.Error("expected assigned id")
	}
	if f.Name != "invoice.pdf" {
		t.Errorf("name = %q", f.Name)
	}
	if f.Type != "application/pdf" {
		t.Errorf("type = %q", f.Type)
	}
	if f.Size != 5 {
		t.Errorf("size = %d, want 5", f.Size)
	}
	if !f.UploadedAt.Equal(now) {
		t.Errorf("uploadedAt = %v, want %v", f.UploadedAt, now)
	}
	want := "data:application/pdf;base64,aGVsbG8="
	if f.URL != want {
		t.Errorf("url = %q, want %q", f.URL, want)
	}
}

func TestEncodeAttachmentDefaultsMIME(t *testing.T) {
	f := EncodeAttachment(clock.System{}, "blob", "", []byte{1, 2, 3})
	if f.Type != "application/octet-stream" {
		t.Errorf("type = %q", f.Type)
	}
	if !strings.HasPrefix(f.URL, "data:application/octet-stream;base64,") {
		t.Errorf("url = %q", f.URL)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
