package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/encoder"
	"github.com/P0llen/speaker-detector/internal/app/model"
)

const (
	speakersDir       = "speakers"
	aggregateFilename = "aggregate.json"
	counterFilename   = "counter"
	sampleExt         = ".wav"
)

// ProfileStore is the durable per-speaker collection of reference samples
// plus a cached aggregate fingerprint. Layout: one directory per speaker id
// containing numbered samples (1.wav, 2.wav, ...), one aggregate.json and a
// counter file remembering the highest index ever issued.
//
// All mutating operations are serialized per speaker id; readers see a
// consistent aggregate, never one mid-rebuild.
type ProfileStore struct {
	root    string
	encoder encoder.Encoder
	logger  *zap.Logger
	locks   *lockRegistry
}

// NewProfileStore creates a store rooted at dataDir/speakers.
func NewProfileStore(dataDir string, enc encoder.Encoder, logger *zap.Logger) (*ProfileStore, error) {
	root := filepath.Join(dataDir, speakersDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create speakers dir: %w", err)
	}
	return &ProfileStore{
		root:    root,
		encoder: enc,
		logger:  logger,
		locks:   newLockRegistry(),
	}, nil
}

// aggregateArtifact is the on-disk form of the cached aggregate fingerprint.
type aggregateArtifact struct {
	Model       string            `json:"model"`
	Dimension   int               `json:"dimension"`
	SampleCount int               `json:"sample_count"`
	Fingerprint model.Fingerprint `json:"fingerprint"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// AddSample verifies the audio through the encoder and persists it as the
// next numbered sample of the speaker, creating the profile on first use.
// Sample indices are never reused, even after deletions. The cached aggregate
// is NOT refreshed here; callers must invoke RebuildAggregate afterwards.
func (s *ProfileStore) AddSample(ctx context.Context, speakerID, audioPath string) (int, error) {
	if err := validateID(speakerID); err != nil {
		return 0, err
	}

	// Encode first so unreadable audio never lands in the profile.
	if _, err := s.encoder.Encode(ctx, audioPath); err != nil {
		return 0, err
	}

	lock := s.locks.get(speakerID)
	lock.Lock()
	defer lock.Unlock()

	dir := s.profileDir(speakerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create profile dir: %w", err)
	}

	// The counter outlives the samples: an index freed by a deletion or a
	// correction is never handed out again. Profiles written before the
	// counter existed fall back to the surviving filenames.
	next := s.readCounterLocked(speakerID) + 1
	indices, err := s.sampleIndices(speakerID)
	if err != nil {
		return 0, err
	}
	if len(indices) > 0 && indices[len(indices)-1] >= next {
		next = indices[len(indices)-1] + 1
	}

	dst := filepath.Join(dir, strconv.Itoa(next)+sampleExt)
	if err := copyFile(audioPath, dst); err != nil {
		return 0, fmt.Errorf("persist sample: %w", err)
	}
	if err := s.writeCounterLocked(speakerID, next); err != nil {
		return 0, fmt.Errorf("persist sample counter: %w", err)
	}

	s.logger.Info("sample enrolled",
		zap.String("speaker", speakerID),
		zap.Int("index", next))
	return next, nil
}

// RebuildAggregate recomputes fingerprints for every stored sample and caches
// their element-wise mean. A sample that fails encoding is skipped and logged,
// never fatal for the rest of the profile. When no sample survives, the stale
// aggregate is removed and ErrEmptyProfile is returned.
func (s *ProfileStore) RebuildAggregate(ctx context.Context, speakerID string) (model.Fingerprint, error) {
	lock := s.locks.get(speakerID)
	lock.Lock()
	defer lock.Unlock()

	return s.rebuildAggregateLocked(ctx, speakerID)
}

func (s *ProfileStore) rebuildAggregateLocked(ctx context.Context, speakerID string) (model.Fingerprint, error) {
	dir := s.profileDir(speakerID)
	if _, err := os.Stat(dir); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "speaker %s", speakerID)
	}

	names, err := s.sampleNamesLocked(speakerID)
	if err != nil {
		return nil, err
	}

	fingerprints := make([]model.Fingerprint, 0, len(names))
	for _, name := range names {
		fp, err := s.encoder.Encode(ctx, filepath.Join(dir, name))
		if err != nil {
			s.logger.Warn("skipping unreadable sample",
				zap.String("speaker", speakerID),
				zap.String("sample", name),
				zap.Error(err))
			continue
		}
		fingerprints = append(fingerprints, fp)
	}

	if len(fingerprints) == 0 {
		// Remove the stale cache so identify never reads it silently.
		_ = os.Remove(filepath.Join(dir, aggregateFilename))
		return nil, apperrors.Wrapf(apperrors.ErrEmptyProfile, "speaker %s", speakerID)
	}

	mean := model.Mean(fingerprints)
	artifact := aggregateArtifact{
		Model:       s.encoder.Info().Model,
		Dimension:   mean.Dimension(),
		SampleCount: len(fingerprints),
		Fingerprint: mean,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := writeJSONAtomic(filepath.Join(dir, aggregateFilename), artifact); err != nil {
		return nil, fmt.Errorf("write aggregate: %w", err)
	}

	s.logger.Info("aggregate rebuilt",
		zap.String("speaker", speakerID),
		zap.Int("samples", len(fingerprints)))
	return mean, nil
}

// ListProfiles returns one entry per stored speaker, ordered by identifier.
func (s *ProfileStore) ListProfiles() ([]model.ProfileInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read speakers dir: %w", err)
	}

	profiles := make([]model.ProfileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()

		lock := s.locks.get(id)
		lock.RLock()
		names, err := s.sampleNamesLocked(id)
		lock.RUnlock()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, model.ProfileInfo{ID: id, SampleCount: len(names)})
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}

// Aggregates returns a consistent snapshot of every cached aggregate
// fingerprint, keyed by speaker id. Profiles without a valid aggregate are
// omitted.
func (s *ProfileStore) Aggregates() (map[string]model.Fingerprint, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read speakers dir: %w", err)
	}

	aggregates := make(map[string]model.Fingerprint)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()

		lock := s.locks.get(id)
		lock.RLock()
		artifact, err := s.readAggregateLocked(id)
		lock.RUnlock()
		if err != nil {
			s.logger.Warn("skipping unreadable aggregate",
				zap.String("speaker", id), zap.Error(err))
			continue
		}
		if artifact != nil {
			aggregates[id] = artifact.Fingerprint
		}
	}
	return aggregates, nil
}

// Rename relabels a profile and its cached aggregate atomically with respect
// to readers of either name.
func (s *ProfileStore) Rename(oldID, newID string) error {
	if err := validateID(newID); err != nil {
		return err
	}
	if oldID == newID {
		return apperrors.Wrapf(apperrors.ErrConflict, "speaker %s", newID)
	}

	first, second := s.locks.pair(oldID, newID)
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	oldDir := s.profileDir(oldID)
	if _, err := os.Stat(oldDir); err != nil {
		return apperrors.Wrapf(apperrors.ErrNotFound, "speaker %s", oldID)
	}
	newDir := s.profileDir(newID)
	if _, err := os.Stat(newDir); err == nil {
		return apperrors.Wrapf(apperrors.ErrConflict, "speaker %s", newID)
	}

	// Single rename of the profile directory moves samples and the cached
	// aggregate together; readers observe one name or the other.
	if err := os.Rename(oldDir, newDir); err != nil {
		return fmt.Errorf("rename profile: %w", err)
	}

	s.logger.Info("speaker renamed",
		zap.String("old", oldID), zap.String("new", newID))
	return nil
}

// Delete removes the profile, its samples and its cached aggregate. Deleting
// an absent profile is not an error; the bool reports whether it existed.
func (s *ProfileStore) Delete(speakerID string) (bool, error) {
	lock := s.locks.get(speakerID)
	lock.Lock()
	defer lock.Unlock()

	dir := s.profileDir(speakerID)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("delete profile: %w", err)
	}

	s.logger.Info("speaker deleted", zap.String("speaker", speakerID))
	return true, nil
}

// Samples lists the speaker's sample filenames in enrollment order.
func (s *ProfileStore) Samples(speakerID string) ([]string, error) {
	lock := s.locks.get(speakerID)
	lock.RLock()
	defer lock.RUnlock()

	if _, err := os.Stat(s.profileDir(speakerID)); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "speaker %s", speakerID)
	}
	return s.sampleNamesLocked(speakerID)
}

// SamplePath resolves a sample filename inside a speaker's profile.
func (s *ProfileStore) SamplePath(speakerID, filename string) string {
	return filepath.Join(s.profileDir(speakerID), filepath.Base(filename))
}

// MoveSample reassigns one sample file from one profile to another,
// preserving the filename. The destination profile is created when new. Both
// profiles stay locked for the whole move. Aggregates of both sides are left
// stale on purpose; the correction flow rebuilds them right after.
func (s *ProfileStore) MoveSample(oldID, newID, filename string, deleteOriginal bool) error {
	if err := validateID(newID); err != nil {
		return err
	}
	filename = filepath.Base(filename)

	first, second := s.locks.pair(oldID, newID)
	first.Lock()
	defer first.Unlock()
	if first != second {
		second.Lock()
		defer second.Unlock()
	}

	src := filepath.Join(s.profileDir(oldID), filename)
	if _, err := os.Stat(src); err != nil {
		return apperrors.Wrapf(apperrors.ErrNotFound, "sample %s of speaker %s", filename, oldID)
	}

	dstDir := s.profileDir(newID)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	dst := filepath.Join(dstDir, filename)
	if _, err := os.Stat(dst); err == nil {
		return apperrors.Wrapf(apperrors.ErrConflict, "sample %s of speaker %s", filename, newID)
	}

	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("copy sample: %w", err)
	}
	// Advance the destination counter past the moved index, so a later
	// enrollment there cannot collide with or reuse it.
	if idx, err := strconv.Atoi(strings.TrimSuffix(filename, sampleExt)); err == nil {
		if idx > s.readCounterLocked(newID) {
			if err := s.writeCounterLocked(newID, idx); err != nil {
				return fmt.Errorf("persist sample counter: %w", err)
			}
		}
	}
	if deleteOriginal {
		if err := os.Remove(src); err != nil {
			return fmt.Errorf("remove original sample: %w", err)
		}
	}
	return nil
}

// Exists reports whether a profile directory is present.
func (s *ProfileStore) Exists(speakerID string) bool {
	_, err := os.Stat(s.profileDir(speakerID))
	return err == nil
}

// Export returns a serialized snapshot of all cached aggregates, ordered by
// speaker id.
func (s *ProfileStore) Export() ([]model.ProfileSnapshot, error) {
	profiles, err := s.ListProfiles()
	if err != nil {
		return nil, err
	}

	snapshots := make([]model.ProfileSnapshot, 0, len(profiles))
	for _, p := range profiles {
		lock := s.locks.get(p.ID)
		lock.RLock()
		artifact, err := s.readAggregateLocked(p.ID)
		lock.RUnlock()
		if err != nil || artifact == nil {
			continue
		}
		snapshots = append(snapshots, model.ProfileSnapshot{
			ID:          p.ID,
			SampleCount: p.SampleCount,
			Dimension:   artifact.Dimension,
			Aggregate:   artifact.Fingerprint,
		})
	}
	return snapshots, nil
}

func (s *ProfileStore) profileDir(speakerID string) string {
	return filepath.Join(s.root, filepath.Base(speakerID))
}

func (s *ProfileStore) readAggregateLocked(speakerID string) (*aggregateArtifact, error) {
	data, err := os.ReadFile(filepath.Join(s.profileDir(speakerID), aggregateFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var artifact aggregateArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// readCounterLocked returns the highest sample index ever issued for the
// profile, 0 when none was recorded yet.
func (s *ProfileStore) readCounterLocked(speakerID string) int {
	data, err := os.ReadFile(filepath.Join(s.profileDir(speakerID), counterFilename))
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func (s *ProfileStore) writeCounterLocked(speakerID string, v int) error {
	path := filepath.Join(s.profileDir(speakerID), counterFilename)
	return os.WriteFile(path, []byte(strconv.Itoa(v)), 0o644)
}

// sampleIndices returns the numeric indices of all stored samples, ascending.
func (s *ProfileStore) sampleIndices(speakerID string) ([]int, error) {
	names, err := s.sampleNamesLocked(speakerID)
	if err != nil {
		return nil, err
	}
	indices := make([]int, 0, len(names))
	for _, name := range names {
		idx, err := strconv.Atoi(strings.TrimSuffix(name, sampleExt))
		if err != nil {
			continue
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices, nil
}

func (s *ProfileStore) sampleNamesLocked(speakerID string) ([]string, error) {
	entries, err := os.ReadDir(s.profileDir(speakerID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == aggregateFilename {
			continue
		}
		if !strings.HasSuffix(entry.Name(), sampleExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return sampleSortKey(names[i]) < sampleSortKey(names[j])
	})
	return names, nil
}

// sampleSortKey orders numbered samples numerically, anything else after.
func sampleSortKey(name string) int {
	idx, err := strconv.Atoi(strings.TrimSuffix(name, sampleExt))
	if err != nil {
		return 1<<31 - 1
	}
	return idx
}

func validateID(id string) error {
	if id == "" || id == "." || id == ".." ||
		strings.ContainsAny(id, "/\\") {
		return apperrors.Newf("invalid identifier %q", id)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(dst), ".sample-*")
	if err != nil {
		return err
	}
	tmp := out.Name()
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
