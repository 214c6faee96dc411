package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/nunnsy/betfair/internal/domain"
)

// multipartThreshold is the object size above which the archiver switches
// from a single PutObject to a multipart upload.
const multipartThreshold = 16 * 1024 * 1024

// Archiver implements domain.SettlementArchiver by appending cleared bets to
// monthly JSONL objects:
//
//	archive/settlements/2026-08.jsonl
//
// Each call reads the month's existing object, appends one JSON line per
// settlement and writes the object back. Callers serialise runs (the settled
// job takes a distributed lock) so the read-append-write cannot interleave.
//
// Deleting archived rows from the primary store is intentionally not done
// here; the store only marks them archived once the upload has succeeded.
type Archiver struct {
	writer domain.BlobWriter
	reader domain.BlobReader
}

// NewArchiver creates a new Archiver.
func NewArchiver(writer domain.BlobWriter, reader domain.BlobReader) *Archiver {
	return &Archiver{writer: writer, reader: reader}
}

// Archive appends the given settlements to their monthly archive objects and
// returns the number of records written.
func (a *Archiver) Archive(ctx context.Context, settlements []domain.Settlement) (int64, error) {
	if len(settlements) == 0 {
		return 0, nil
	}

	groups := make(map[string][]domain.Settlement)
	for _, st := range settlements {
		month := settledMonth(st)
		groups[month] = append(groups[month], st)
	}

	months := make([]string, 0, len(groups))
	for month := range groups {
		months = append(months, month)
	}
	sort.Strings(months)

	var written int64
	for _, month := range months {
		path := archivePath(month)

		buf, err := a.readExisting(ctx, path)
		if err != nil {
			return written, err
		}

		if err := appendJSONL(buf, groups[month]); err != nil {
			return written, fmt.Errorf("s3blob: archive %s: %w", path, err)
		}

		if err := a.upload(ctx, path, buf); err != nil {
			return written, err
		}
		written += int64(len(groups[month]))
	}

	return written, nil
}

// readExisting returns the current contents of the archive object, or an
// empty buffer when the object does not exist yet. A missing trailing newline
// in the existing object is repaired so appended lines stay one-per-record.
func (a *Archiver) readExisting(ctx context.Context, path string) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}

	exists, err := a.reader.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("s3blob: archive head %s: %w", path, err)
	}
	if !exists {
		return buf, nil
	}

	rc, err := a.reader.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("s3blob: archive read %s: %w", path, err)
	}
	defer rc.Close()

	if _, err := io.Copy(buf, rc); err != nil {
		return nil, fmt.Errorf("s3blob: archive read %s: %w", path, err)
	}

	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf, nil
}

func (a *Archiver) upload(ctx context.Context, path string, buf *bytes.Buffer) error {
	if buf.Len() >= multipartThreshold {
		if err := a.writer.PutMultipart(ctx, path, bytes.NewReader(buf.Bytes()), minPartSize); err != nil {
			return fmt.Errorf("s3blob: archive upload %s: %w", path, err)
		}
		return nil
	}
	if err := a.writer.Put(ctx, path, bytes.NewReader(buf.Bytes()), "application/x-ndjson"); err != nil {
		return fmt.Errorf("s3blob: archive upload %s: %w", path, err)
	}
	return nil
}

// settledMonth picks the archive partition for one settlement: the month it
// settled, falling back to the month the row was recorded for rows the
// exchange reported without a settled time.
func settledMonth(st domain.Settlement) string {
	if st.SettledAt != nil {
		return st.SettledAt.UTC().Format("2006-01")
	}
	return st.CreatedAt.UTC().Format("2006-01")
}

// archivePath builds the object key for one monthly archive file.
func archivePath(month string) string {
	return "archive/settlements/" + month + ".jsonl"
}

// appendJSONL writes each settlement as a single compact JSON line.
func appendJSONL(buf *bytes.Buffer, settlements []domain.Settlement) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	for i, st := range settlements {
		if err := enc.Encode(archiveRecord(st)); err != nil {
			return fmt.Errorf("jsonl encode record %d: %w", i, err)
		}
	}
	return nil
}

// archiveLine is the stable JSONL shape for one archived settlement.
type archiveLine struct {
	BetID               string     `json:"betId"`
	MarketID            string     `json:"marketId"`
	SelectionID         int64      `json:"selectionId"`
	Handicap            float64    `json:"handicap,omitempty"`
	EventTypeID         string     `json:"eventTypeId,omitempty"`
	EventID             string     `json:"eventId,omitempty"`
	Side                string     `json:"side"`
	BetOutcome          string     `json:"betOutcome"`
	OrderType           string     `json:"orderType,omitempty"`
	PersistenceType     string     `json:"persistenceType,omitempty"`
	PriceRequested      float64    `json:"priceRequested"`
	PriceMatched        float64    `json:"priceMatched"`
	PriceReduced        bool       `json:"priceReduced,omitempty"`
	SizeSettled         float64    `json:"sizeSettled"`
	SizeCancelled       float64    `json:"sizeCancelled,omitempty"`
	Profit              float64    `json:"profit"`
	Commission          float64    `json:"commission,omitempty"`
	BetCount            int        `json:"betCount,omitempty"`
	CustomerOrderRef    string     `json:"customerOrderRef,omitempty"`
	CustomerStrategyRef string     `json:"customerStrategyRef,omitempty"`
	PlacedAt            *time.Time `json:"placedDate,omitempty"`
	SettledAt           *time.Time `json:"settledDate,omitempty"`
}

func archiveRecord(st domain.Settlement) archiveLine {
	return archiveLine{
		BetID:               st.BetID,
		MarketID:            st.MarketID,
		SelectionID:         st.SelectionID,
		Handicap:            st.Handicap,
		EventTypeID:         st.EventTypeID,
		EventID:             st.EventID,
		Side:                st.Side,
		BetOutcome:          st.BetOutcome,
		OrderType:           st.OrderType,
		PersistenceType:     st.PersistenceType,
		PriceRequested:      st.PriceRequested,
		PriceMatched:        st.PriceMatched,
		PriceReduced:        st.PriceReduced,
		SizeSettled:         st.SizeSettled,
		SizeCancelled:       st.SizeCancelled,
		Profit:              st.Profit,
		Commission:          st.Commission,
		BetCount:            st.BetCount,
		CustomerOrderRef:    st.CustomerOrderRef,
		CustomerStrategyRef: st.CustomerStrategyRef,
		PlacedAt:            st.PlacedAt,
		SettledAt:           st.SettledAt,
	}
}

// Compile-time interface check.
var _ domain.SettlementArchiver = (*Archiver)(nil)
