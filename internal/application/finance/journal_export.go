package finance

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/garments-erp/backend/internal/domain/finance"
	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const exportContentType = "text/csv; charset=utf-8"

// ExportArchive keeps rendered exports and hands out time-limited links to them
type ExportArchive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
}

// ArchivedExportDTO describes an export stored in the archive
type ArchivedExportDTO struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Entries   int       `json:"entries"`
	Bytes     int       `json:"bytes"`
}

// WithArchive enables ArchiveExport; keys are created under prefix
func (s *JournalService) WithArchive(archive ExportArchive, prefix string) *JournalService {
	s.archive = archive
	s.archivePrefix = prefix
	return s
}

var exportHeader = []string{
	"Journal Number", "Transaction Date", "Journal Type", "Reference Number", "Description", "Status",
	"Total Debit", "Total Credit", "Line", "Account Code", "Account Name", "Line Description",
	"Debit", "Credit", "Line Reference",
}

// Export renders every entry matching filter as CSV, one row per line
func (s *JournalService) Export(ctx context.Context, filter finance.JournalEntryFilter) ([]byte, error) {
	data, _, err := s.render(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.metrics.JournalEntry("exported", "all")
	return data, nil
}

// ArchiveExport renders the export like Export, stores it and returns a download link
func (s *JournalService) ArchiveExport(ctx context.Context, filter finance.JournalEntryFilter, userID uuid.UUID) (*ArchivedExportDTO, error) {
	if s.archive == nil {
		return nil, shared.NewDomainError("EXPORT_ARCHIVE_DISABLED", "Export archiving is not configured")
	}
	data, entries, err := s.render(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	key := path.Join(s.archivePrefix, now.Format("2006/01"),
		fmt.Sprintf("journal-entries-%s-%s.csv", now.Format("20060102-150405"), uuid.NewString()[:8]))
	if err := s.archive.Put(ctx, key, data, exportContentType); err != nil {
		return nil, passDomain(s.logger, err, "Failed to archive export")
	}
	link, expires, err := s.archive.DownloadURL(ctx, key)
	if err != nil {
		return nil, passDomain(s.logger, err, "Failed to create download link")
	}

	s.logger.Info("journal export archived",
		zap.String("key", key),
		zap.Int("entries", entries),
		zap.String("requested_by", userID.String()),
	)
	s.metrics.JournalEntry("archived", "all")
	return &ArchivedExportDTO{Key: key, URL: link, ExpiresAt: expires, Entries: entries, Bytes: len(data)}, nil
}

func (s *JournalService) render(ctx context.Context, filter finance.JournalEntryFilter) ([]byte, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}
	filter.Page, filter.PageSize = 0, 0
	entries, _, err := s.journals.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, passDomain(s.logger, err, "Failed to export journal entries")
	}
	index, err := s.accountIndex(ctx)
	if err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, 0, passDomain(s.logger, err, "Failed to write export")
	}
	for _, e := range entries {
		header := []string{
			e.JournalNumber,
			e.TransactionDate.Format("2006-01-02"),
			string(e.JournalType),
			e.ReferenceNumber,
			e.Description,
			string(e.Status),
			e.TotalDebit.StringFixed(2),
			e.TotalCredit.StringFixed(2),
		}
		for _, l := range e.Lines {
			code, name := "", ""
			if a, ok := index[l.AccountID]; ok {
				code, name = a.AccountCode, a.AccountName
			}
			row := append(append([]string{}, header...),
				strconv.Itoa(l.LineOrder), code, name, l.Description,
				l.Debit.StringFixed(2), l.Credit.StringFixed(2), l.Reference,
			)
			if err := w.Write(row); err != nil {
				return nil, 0, passDomain(s.logger, err, "Failed to write export")
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, passDomain(s.logger, err, "Failed to write export")
	}
	return buf.Bytes(), len(entries), nil
}
