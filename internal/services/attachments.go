package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AttachmentStore persists uploaded files and returns the URL they are
// served from.
type AttachmentStore interface {
	Put(ctx context.Context, folder, name string, body io.Reader, size int64, contentType string) (string, error)
}

// Attachment is an uploaded file handed to a service.
type Attachment struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

func shortHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// storedName builds "<prefix><yyyymmddhhmmss>_<8 hex><ext>".
func storedName(prefix string, now time.Time, original string) string {
	return fmt.Sprintf("%s%s_%s%s", prefix, now.Format("20060102150405"), shortHex(), strings.ToLower(path.Ext(original)))
}
