package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dataweaver-be/internal/dto"
	"dataweaver-be/internal/entity"
	"dataweaver-be/internal/pkg/serverutils"
	"dataweaver-be/internal/repository/memory"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

var ErrUnsupportedFormat = serverutils.NewHttpError(400, "unsupported export format, expected csv, xlsx or json")

type IExportService interface {
	Export(ctx context.Context, req *dto.ExportRequest) (*dto.ExportResponse, error)

	// WriteTable writes rows for query in the given format and returns the
	// file path. Used directly by the search flow for its CSV snapshot.
	WriteTable(query string, rows []entity.ProductRecord, format string) (string, error)
}

type exportService struct {
	sessionRepo *memory.SessionRepository
	dir         string
}

func NewExportService(sessionRepo *memory.SessionRepository, dir string) IExportService {
	return &exportService{
		sessionRepo: sessionRepo,
		dir:         dir,
	}
}

func (s *exportService) Export(ctx context.Context, req *dto.ExportRequest) (*dto.ExportResponse, error) {
	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		return nil, ErrSessionNotFound
	}
	if !session.HasTable() {
		return nil, ErrNoSearchData
	}

	path, err := s.WriteTable(session.Query, session.Table, req.Format)
	if err != nil {
		return nil, err
	}
	return &dto.ExportResponse{
		Path:   path,
		Format: req.Format,
		Rows:   len(session.Table),
	}, nil
}

func (s *exportService) WriteTable(query string, rows []entity.ProductRecord, format string) (string, error) {
	// The format check comes first so an unsupported format never leaves a
	// partial file behind.
	switch format {
	case FormatCSV, FormatXLSX, FormatJSON:
	default:
		return "", ErrUnsupportedFormat
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_products.%s", sanitizeFilename(query), format))

	switch format {
	case FormatCSV:
		return path, writeCSV(path, rows)
	case FormatXLSX:
		return path, writeXLSX(path, rows)
	default:
		return path, writeJSON(path, rows)
	}
}

var exportHeader = []string{
	"product_name", "price", "currency_symbol", "source", "rating", "reviews",
	"price_normalized", "value_score", "popularity_score",
}

func writeCSV(path string, rows []entity.ProductRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.ProductName,
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			r.CurrencySymbol,
			r.Source,
			strconv.FormatFloat(r.Rating, 'f', 2, 64),
			strconv.Itoa(r.Reviews),
			strconv.FormatFloat(r.PriceNormalized, 'f', 4, 64),
			strconv.FormatFloat(r.ValueScore, 'f', 4, 64),
			strconv.FormatFloat(r.PopularityScore, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, rows []entity.ProductRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, r := range rows {
		values := []interface{}{
			r.ProductName, r.Price, r.CurrencySymbol, r.Source,
			r.Rating, r.Reviews, r.PriceNormalized, r.ValueScore, r.PopularityScore,
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func writeJSON(path string, rows []entity.ProductRecord) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// sanitizeFilename keeps the query-derived file name portable.
func sanitizeFilename(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "products"
	}
	var b strings.Builder
	for _, r := range query {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "products"
	}
	return b.String()
}
