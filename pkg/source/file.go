package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/arborgraph/arbor/pkg/errors"
	"github.com/arborgraph/arbor/pkg/family"
)

// FileSource reads members from a JSON file containing the flat member
// array - the same payload the site's REST endpoint returns, saved to
// disk. This is the default source for CLI usage.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the member array.
func (s *FileSource) Fetch(ctx context.Context) ([]family.Member, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "members file %s", s.path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "read members file %s", s.path)
	}

	var members []family.Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode members file %s", s.path)
	}
	return members, nil
}

// Description identifies the file for logging and cache keys.
func (s *FileSource) Description() string {
	return "file:" + s.path
}

var _ Source = (*FileSource)(nil)
