package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:  path,
		mutex: &sync.Mutex{},
	}
}

func (s *FileStore) log(fields ...map[string]interface{}) *log.Entry {
	output := log.WithFields(log.Fields{
		"source": "store.go",
		"path":   s.path,
	})

	if fields != nil {
		output = output.WithFields(fields[0])
	}

	return output
}

func (s *FileStore) Load(ctx context.Context) ([]float64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.read()
}

func (s *FileStore) SubmitScore(ctx context.Context, score float64) (float64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	scores, err := s.read()
	if err != nil {
		return 0, err
	}

	scores = InsertScore(scores, score)
	if err := s.write(scores); err != nil {
		return 0, err
	}

	s.log(map[string]interface{}{
		"score":   score,
		"entries": len(scores),
	}).Info("Saved score.")

	return score, nil
}

// Ping checks that the directory holding the backing file exists, since that
// is where the next write will create its temp file.
func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat storage dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage dir %s is not a directory", dir)
	}

	return nil
}

func (s *FileStore) read() ([]float64, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []float64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}

	return decodeScores(raw)
}

// write replaces the backing file via a temp file in the same directory so a
// crash never leaves a partially written leaderboard behind.
func (s *FileStore) write(scores []float64) error {
	data, err := encodeScores(scores)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	return nil
}

func decodeScores(raw []byte) ([]float64, error) {
	var scores []float64
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}

	if scores == nil {
		scores = []float64{}
	}

	return scores, nil
}

func encodeScores(scores []float64) ([]byte, error) {
	data, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}

	return data, nil
}
