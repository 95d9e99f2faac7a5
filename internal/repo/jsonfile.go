package repo

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// readArrayFile reads a JSON array file into out. A missing file is created
// holding "[]" and decoded as empty. Any other read or decode failure is a
// StorageError; a corrupt file is never treated as empty data.
func readArrayFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := writeArrayFile(path, []struct{}{}); werr != nil {
			return werr
		}
		data = []byte("[]")
	} else if err != nil {
		return &StorageError{Op: "read", Path: path, Err: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &StorageError{Op: "decode", Path: path, Err: err}
	}
	return nil
}

// writeArrayFile writes v pretty-printed to path via a temp file and rename,
// so a crash mid-write never leaves a half-written file behind.
func writeArrayFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
