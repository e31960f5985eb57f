package persistence

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
	"github.com/gcbaptista/go-ir-engine/internal/indexing"
	"github.com/gcbaptista/go-ir-engine/internal/logger"
)

// SnapshotVersion is bumped whenever the encoded corpus layout changes.
const SnapshotVersion = 1

// SnapshotHeader is decoded before the payload so that a version mismatch is
// detected without attempting to decode an incompatible corpus.
type SnapshotHeader struct {
	Version   int
	CreatedAt time.Time
}

// Snapshot is the persisted state of a corpus together with the report of the
// indexing run that built it.
type Snapshot struct {
	Header SnapshotHeader
	Corpus *corpus.Corpus
	Report indexing.Report
}

type snapshotPayload struct {
	Corpus *corpus.Corpus
	Report indexing.Report
}

// SaveSnapshot writes c and its indexing report to path.
func SaveSnapshot(path string, c *corpus.Corpus, report indexing.Report, compression CompressionType) error {
	if c == nil {
		return fmt.Errorf("corpus cannot be nil")
	}
	header := SnapshotHeader{Version: SnapshotVersion, CreatedAt: time.Now().UTC()}
	payload := snapshotPayload{Corpus: c, Report: report}
	if err := SaveGob(path, compression, header, payload); err != nil {
		return err
	}

	stats := c.Stats()
	logger.WithComponent("persistence").Info("snapshot saved",
		"path", path,
		"compression", compression.String(),
		"documents", stats.Documents,
		"terms", stats.Terms)
	return nil
}

// LoadSnapshot reads the snapshot at path. Failures are SnapshotErrors whose
// kind is ErrSnapshotNotFound, ErrSnapshotCorrupt or ErrSnapshotIncompatible.
func LoadSnapshot(path string) (*Snapshot, error) {
	dec, err := OpenGob(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, irerrors.NewSnapshotError(path, irerrors.ErrSnapshotNotFound, nil)
		}
		return nil, irerrors.NewSnapshotError(path, irerrors.ErrSnapshotCorrupt, err)
	}
	defer closeQuietly(dec, path)

	var header SnapshotHeader
	if err := dec.Decode(&header); err != nil {
		return nil, irerrors.NewSnapshotError(path, irerrors.ErrSnapshotCorrupt, err)
	}
	if header.Version != SnapshotVersion {
		return nil, irerrors.NewSnapshotError(path, irerrors.ErrSnapshotIncompatible,
			fmt.Errorf("found version %d, expected %d", header.Version, SnapshotVersion))
	}

	payload := snapshotPayload{Corpus: corpus.New()}
	if err := dec.Decode(&payload); err != nil {
		return nil, irerrors.NewSnapshotError(path, irerrors.ErrSnapshotCorrupt, err)
	}
	if payload.Corpus == nil || payload.Corpus.Index == nil || payload.Corpus.Store == nil {
		return nil, irerrors.NewSnapshotError(path, irerrors.ErrSnapshotCorrupt, errors.New("snapshot holds no corpus"))
	}

	return &Snapshot{Header: header, Corpus: payload.Corpus, Report: payload.Report}, nil
}
