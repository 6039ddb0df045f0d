package opentdb

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileCache keeps API payloads on disk so repeated lookups stay offline.
type fileCache struct {
	rootDir string
}

func newFileCache(cacheDirectory string) *fileCache {
	return &fileCache{
		rootDir: cacheDirectory,
	}
}

func (cache *fileCache) filePath(key string) string {
	return filepath.Join(cache.rootDir, key+".json")
}

// cache returns the stored payload for key, calling f and storing its result on a miss.
func (cache *fileCache) cache(key string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(key)
	if contents, err := os.ReadFile(localFilePath); err == nil {
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	if err := os.WriteFile(localFilePath, contents, 0644); err != nil {
		return contents, fmt.Errorf("os.WriteFile(%s) > %w", localFilePath, err)
	}
	return contents, nil
}
