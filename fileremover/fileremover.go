package fileremover

import (
	"errors"
	"io/fs"
	"os"
)

// FileRemover ...
type FileRemover interface {
	// RemoveIfExists removes the file at name and reports whether there was one.
	RemoveIfExists(name string) (bool, error)
}

type fileRemover struct{}

// NewFileRemover ...
func NewFileRemover() FileRemover {
	return fileRemover{}
}

func (r fileRemover) RemoveIfExists(name string) (bool, error) {
	err := os.Remove(name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
