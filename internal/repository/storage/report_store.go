package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ReportStore defines the interface for exported report storage
type ReportStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateReportPath creates a unique object path for an exported report.
// Layout: <workspace>/reports/<scenario>/<uuid>.<ext>
func GenerateReportPath(workspaceID int32, scenarioID uuid.UUID, ext string) string {
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	return path.Join(fmt.Sprintf("%d", workspaceID), "reports", scenarioID.String(), filename)
}
