package records

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic/internal/platform/clock"
)

// EncodeAttachment builds a FileAttachment from raw file bytes, inlining
// the payload as a base64 data URL. The record store only stores the
// result; it never decodes it back.
func EncodeAttachment(clk clock.Clock, name, mimeType string, data []byte) FileAttachment {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return FileAttachment{
		ID:         uuid.NewString(),
		Name:       name,
		URL:        fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		Type:       mimeType,
		Size:       int64(len(data)),
		UploadedAt: clk.Now(),
	}
}

// FormatFileSize renders a byte count for display ("1.5 KB").
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMG"[exp])
}
