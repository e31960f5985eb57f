package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-ir-engine/internal/corpus"
	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
	"github.com/gcbaptista/go-ir-engine/internal/indexing"
	"github.com/gcbaptista/go-ir-engine/internal/testutil"
	"github.com/gcbaptista/go-ir-engine/model"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		input   string
		want    CompressionType
		wantErr bool
	}{
		{"", CompressionNone, false},
		{"none", CompressionNone, false},
		{"LZ4", CompressionLZ4, false},
		{"zstd", CompressionZSTD, false},
		{"gzip", CompressionNone, true},
	}
	for _, tt := range tests {
		got, err := ParseCompression(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestSaveLoadGob(t *testing.T) {
	type record struct {
		Name  string
		Count int
	}

	for _, c := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "data.gob")
			require.NoError(t, SaveGob(path, c, record{Name: "a", Count: 1}, record{Name: "b", Count: 2}))

			var first, second record
			require.NoError(t, LoadGob(path, &first, &second))
			assert.Equal(t, record{Name: "a", Count: 1}, first)
			assert.Equal(t, record{Name: "b", Count: 2}, second)

			_, err := os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temporary file is renamed away")
		})
	}

	t.Run("missing file", func(t *testing.T) {
		var r record
		err := LoadGob(filepath.Join(t.TempDir(), "missing.gob"), &r)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("foreign file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "foreign.gob")
		require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0600))
		var r record
		assert.ErrorIs(t, LoadGob(path, &r), ErrBadHeader)
	})
}

func hotelCorpus(t *testing.T) *corpus.Corpus {
	lines := append([]string{}, testutil.HotelCorpus...)
	lines = append(lines, "2020-01-03\tA Title\troom service room")
	return testutil.NewCorpus(t, lines...)
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			original := hotelCorpus(t)
			report := indexing.Report{Files: 1, Documents: 3, MalformedLines: 2}
			path := filepath.Join(t.TempDir(), "snapshot.gob")

			require.NoError(t, SaveSnapshot(path, original, report, c))

			snap, err := LoadSnapshot(path)
			require.NoError(t, err)
			assert.Equal(t, SnapshotVersion, snap.Header.Version)
			assert.False(t, snap.Header.CreatedAt.IsZero())
			assert.Equal(t, report, snap.Report)
			assert.Equal(t, original.Stats(), snap.Corpus.Stats())

			for _, doc := range original.Documents() {
				loaded, ok := snap.Corpus.Document(doc.ID)
				require.True(t, ok)
				assert.Equal(t, doc.Date, loaded.Date)
				assert.Equal(t, doc.Title, loaded.Title)
				assert.Equal(t, doc.Text, loaded.Text)
				assert.Equal(t, doc.Occurrences, loaded.Occurrences)
				assert.Equal(t, doc.Frequencies, loaded.Frequencies)
			}
			assert.Equal(t, []model.DocumentID{0, 1}, snap.Corpus.Postings("hotel").IDs())
			assert.Equal(t, model.DocumentID(3), snap.Corpus.Store.NextID)
		})
	}
}

func TestLoadSnapshot_Failures(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := LoadSnapshot(filepath.Join(t.TempDir(), "none.gob"))
		assert.ErrorIs(t, err, irerrors.ErrSnapshotNotFound)
	})

	t.Run("corrupt header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.gob")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))
		_, err := LoadSnapshot(path)
		assert.ErrorIs(t, err, irerrors.ErrSnapshotCorrupt)
	})

	t.Run("truncated payload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshot.gob")
		require.NoError(t, SaveSnapshot(path, hotelCorpus(t), indexing.Report{}, CompressionNone))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0600))

		_, err = LoadSnapshot(path)
		assert.ErrorIs(t, err, irerrors.ErrSnapshotCorrupt)
	})

	t.Run("incompatible version", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "old.gob")
		header := SnapshotHeader{Version: SnapshotVersion + 1}
		require.NoError(t, SaveGob(path, CompressionNone, header, snapshotPayload{Corpus: corpus.New()}))

		_, err := LoadSnapshot(path)
		assert.ErrorIs(t, err, irerrors.ErrSnapshotIncompatible)
	})
}
