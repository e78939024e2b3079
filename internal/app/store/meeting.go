package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const meetingsDir = "meetings"

// MeetingStore holds the ordered, append-only audio chunks of recorded
// meetings: one directory per meeting id containing normalized WAV chunks.
type MeetingStore struct {
	root   string
	logger *zap.Logger
	locks  *lockRegistry
}

// NewMeetingStore creates a store rooted at dataDir/meetings.
func NewMeetingStore(dataDir string, logger *zap.Logger) (*MeetingStore, error) {
	root := filepath.Join(dataDir, meetingsDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create meetings dir: %w", err)
	}
	return &MeetingStore{
		root:   root,
		logger: logger,
		locks:  newLockRegistry(),
	}, nil
}

// SaveChunk persists an already-normalized WAV chunk under the meeting,
// creating the meeting on first chunk. The chunk keeps its client-assigned
// name; ordering is the lexicographic name order.
func (s *MeetingStore) SaveChunk(meetingID, chunkName string, data []byte) (string, error) {
	if err := validateID(meetingID); err != nil {
		return "", err
	}

	lock := s.locks.get(meetingID)
	lock.Lock()
	defer lock.Unlock()

	dir := s.meetingDir(meetingID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create meeting dir: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(chunkName), filepath.Ext(chunkName)) + sampleExt
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write chunk: %w", err)
	}

	s.logger.Info("chunk saved",
		zap.String("meeting", meetingID),
		zap.String("chunk", name))
	return path, nil
}

// Chunks lists the meeting's chunk paths in deterministic (lexicographic)
// order. A missing meeting yields an empty list.
func (s *MeetingStore) Chunks(meetingID string) ([]string, error) {
	lock := s.locks.get(meetingID)
	lock.RLock()
	defer lock.RUnlock()

	dir := s.meetingDir(meetingID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read meeting dir: %w", err)
	}

	chunks := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sampleExt) {
			continue
		}
		chunks = append(chunks, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(chunks)
	return chunks, nil
}

// ListMeetings returns all meeting ids, ordered.
func (s *MeetingStore) ListMeetings() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read meetings dir: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Exists reports whether the meeting has been created.
func (s *MeetingStore) Exists(meetingID string) bool {
	_, err := os.Stat(s.meetingDir(meetingID))
	return err == nil
}

// Dir exposes the meeting directory, used for pipeline scratch files.
func (s *MeetingStore) Dir(meetingID string) string {
	return s.meetingDir(meetingID)
}

// Delete removes the meeting and all its chunks. The bool reports whether
// the meeting existed; deleting twice is a no-op.
func (s *MeetingStore) Delete(meetingID string) (bool, error) {
	lock := s.locks.get(meetingID)
	lock.Lock()
	defer lock.Unlock()

	dir := s.meetingDir(meetingID)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("delete meeting: %w", err)
	}

	s.logger.Info("meeting deleted", zap.String("meeting", meetingID))
	return true, nil
}

func (s *MeetingStore) meetingDir(meetingID string) string {
	return filepath.Join(s.root, filepath.Base(meetingID))
}
