package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/docx"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/metrics"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/projection"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/report"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/repository"
)

const completeReportTitle = "ПОЛНЫЙ ОТЧЕТ ПО ВСЕМ ПОЛЬЗОВАТЕЛЯМ"

// Renderer turns a report table into a binary document.
type Renderer interface {
	Render(t report.Table, title string, o report.Orientation) ([]byte, error)
}

// Report is a rendered export ready to be served as a download.
type Report struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
}

// ReportService builds document exports from the attendee store.
type ReportService struct {
	store     repository.AttendeeStore
	projector *projection.Projector
	renderer  Renderer
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(
	store repository.AttendeeStore,
	projector *projection.Projector,
	renderer Renderer,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{store: store, projector: projector, renderer: renderer, metrics: m, logger: logger}
}

// All exports every attendee with the complete layout.
func (s *ReportService) All(ctx context.Context) (*Report, error) {
	attendees, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return s.build(ctx, attendees, report.ScopeAll, "complete_users_report", completeReportTitle, report.Landscape)
}

// ForRole exports one role with its role-specific layout. token is parsed
// case-insensitively.
func (s *ReportService) ForRole(ctx context.Context, token string) (*Report, error) {
	role, err := model.ParseRole(token)
	if err != nil {
		return nil, err
	}
	attendees, err := s.store.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list attendees by role: %w", err)
	}

	orientation := report.Portrait
	if role == model.RoleVeteran {
		orientation = report.Landscape
	}
	title := "ОТЧЕТ: " + cases.Upper(language.Russian).String(report.RoleName(role))
	name := strings.ToLower(string(role)) + "_report"
	return s.build(ctx, attendees, report.ScopeRole(role), name, title, orientation)
}

func (s *ReportService) build(
	ctx context.Context,
	attendees []model.Attendee,
	scope report.Scope,
	name, title string,
	orientation report.Orientation,
) (*Report, error) {
	start := time.Now()
	table, err := report.ProjectForExport(s.projector.ProjectAll(attendees), scope)
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.Render(table, title, orientation)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	label := "all"
	if role, ok := scope.Role(); ok {
		label = strings.ToLower(string(role))
	}
	s.metrics.ObserveReport(label, start)
	s.logger.InfoContext(ctx, "report generated", "report", name, "count", len(attendees), "bytes", len(content))

	return &Report{
		Name:        name,
		Filename:    name + docx.Extension,
		ContentType: docx.ContentType,
		Content:     content,
	}, nil
}
