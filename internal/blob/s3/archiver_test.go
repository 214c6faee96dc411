package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/nunnsy/betfair/internal/domain"
)

// memoryBlob is an in-memory BlobWriter/BlobReader for archiver tests.
type memoryBlob struct {
	objects    map[string][]byte
	puts       int
	multiparts int
}

func newMemoryBlob() *memoryBlob {
	return &memoryBlob{objects: make(map[string][]byte)}
}

func (m *memoryBlob) Put(_ context.Context, path string, data io.Reader, _ string) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.objects[path] = b
	m.puts++
	return nil
}

func (m *memoryBlob) PutMultipart(_ context.Context, path string, data io.Reader, _ int64) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.objects[path] = b
	m.multiparts++
	return nil
}

func (m *memoryBlob) Get(_ context.Context, path string) (io.ReadCloser, error) {
	b, ok := m.objects[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memoryBlob) List(_ context.Context, prefix string) ([]domain.BlobInfo, error) {
	var infos []domain.BlobInfo
	for path, b := range m.objects {
		if strings.HasPrefix(path, prefix) {
			infos = append(infos, domain.BlobInfo{Path: path, Size: int64(len(b))})
		}
	}
	return infos, nil
}

func (m *memoryBlob) Exists(_ context.Context, path string) (bool, error) {
	_, ok := m.objects[path]
	return ok, nil
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestArchivePartitionsByMonth(t *testing.T) {
	blob := newMemoryBlob()
	arch := NewArchiver(blob, blob)

	settlements := []domain.Settlement{
		{BetID: "1001", MarketID: "1.234", Side: "BACK", Profit: 4.2, SettledAt: ts("2026-07-30T21:00:00Z")},
		{BetID: "1002", MarketID: "1.234", Side: "LAY", Profit: -1.1, SettledAt: ts("2026-08-02T14:30:00Z")},
	}

	n, err := arch.Archive(context.Background(), settlements)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Archive() = %d records, want 2", n)
	}

	for _, path := range []string{
		"archive/settlements/2026-07.jsonl",
		"archive/settlements/2026-08.jsonl",
	} {
		b, ok := blob.objects[path]
		if !ok {
			t.Fatalf("missing archive object %s", path)
		}
		lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
		if len(lines) != 1 {
			t.Errorf("%s has %d lines, want 1", path, len(lines))
		}
	}

	var line archiveLine
	if err := json.Unmarshal(bytes.Split(blob.objects["archive/settlements/2026-07.jsonl"], []byte("\n"))[0], &line); err != nil {
		t.Fatalf("unmarshal archive line: %v", err)
	}
	if line.BetID != "1001" || line.Side != "BACK" || line.Profit != 4.2 {
		t.Errorf("archive line = %+v, want bet 1001 BACK profit 4.2", line)
	}
}

func TestArchiveAppendsToExistingObject(t *testing.T) {
	blob := newMemoryBlob()
	arch := NewArchiver(blob, blob)

	// Existing object lacking its trailing newline must still append
	// one record per line.
	const path = "archive/settlements/2026-08.jsonl"
	blob.objects[path] = []byte(`{"betId":"999","side":"BACK"}`)

	_, err := arch.Archive(context.Background(), []domain.Settlement{
		{BetID: "1003", Side: "LAY", SettledAt: ts("2026-08-10T09:00:00Z")},
	})
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(blob.objects[path]), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("archive has %d lines, want 2: %q", len(lines), string(blob.objects[path]))
	}
	if !strings.Contains(lines[0], `"999"`) {
		t.Errorf("first line lost on append: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"1003"`) {
		t.Errorf("appended line missing: %s", lines[1])
	}
}

func TestArchiveEmptyInput(t *testing.T) {
	blob := newMemoryBlob()
	arch := NewArchiver(blob, blob)

	n, err := arch.Archive(context.Background(), nil)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Archive() = %d, want 0", n)
	}
	if blob.puts != 0 || blob.multiparts != 0 {
		t.Errorf("Archive() uploaded %d+%d objects for empty input", blob.puts, blob.multiparts)
	}
}

func TestArchiveFallsBackToRecordedMonth(t *testing.T) {
	blob := newMemoryBlob()
	arch := NewArchiver(blob, blob)

	created, _ := time.Parse(time.RFC3339, "2026-06-15T12:00:00Z")
	_, err := arch.Archive(context.Background(), []domain.Settlement{
		{BetID: "1004", Side: "BACK", CreatedAt: created},
	})
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if _, ok := blob.objects["archive/settlements/2026-06.jsonl"]; !ok {
		t.Errorf("settlement without settled time not partitioned by recorded month; objects: %v", keys(blob.objects))
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
