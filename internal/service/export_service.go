package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/adminui-api/internal/models"
	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
	"github.com/noah-isme/adminui-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type filteredViewReader interface {
	Filtered(ctx context.Context, id string) ([]models.Member, string, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
}

// ExportService renders a session's filtered view, every page of it.
type ExportService struct {
	sessions  filteredViewReader
	renderers map[string]datasetRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(sessions filteredViewReader, logger *zap.Logger, csv, pdf datasetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sessions:  sessions,
		renderers: map[string]datasetRenderer{ExportFormatCSV: csv, ExportFormatPDF: pdf},
		logger:    logger,
		now:       time.Now,
	}
}

// Export renders the filtered view of session id. An empty format means CSV.
func (s *ExportService) Export(ctx context.Context, id, format string) (*ExportFile, error) {
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok || renderer == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	members, term, err := s.sessions.Filtered(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := renderer.Render(membersDataset(members, term))
	if err != nil {
		s.logger.Error("render export", zap.String("session_id", id), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("members-%s.%s", s.now().UTC().Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Content:     content,
		Rows:        len(members),
	}, nil
}

func membersDataset(members []models.Member, term string) export.Dataset {
	title := "Members"
	if term != "" {
		title = fmt.Sprintf("Members matching %q", term)
	}
	rows := make([][]string, len(members))
	for i, m := range members {
		rows[i] = []string{strconv.Itoa(m.ID), m.Name, m.Email, m.Role}
	}
	return export.Dataset{
		Title:   title,
		Headers: []string{"ID", "Name", "Email", "Role"},
		Rows:    rows,
	}
}
