package artifact

import (
	"context"
	"os"
	"strings"

	ports "prediction-service/internal/core/ports/output"
)

type fileSource struct{}

// NewFileSource reads artifacts from the local filesystem. Both plain paths
// and file:// locations are accepted.
func NewFileSource() ports.ArtifactSource {
	return fileSource{}
}

func (fileSource) Read(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(FilePath(location))
}

// FilePath strips the file:// prefix from location.
func FilePath(location string) string {
	return strings.TrimPrefix(location, SchemeFile+"://")
}
