package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/docx"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/metrics"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/projection"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/report"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/repository"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/service"
)

// recordingRenderer captures what it was asked to render.
type recordingRenderer struct {
	table       report.Table
	title       string
	orientation report.Orientation
	err         error
}

func (r *recordingRenderer) Render(t report.Table, title string, o report.Orientation) ([]byte, error) {
	r.table, r.title, r.orientation = t, title, o
	if r.err != nil {
		return nil, r.err
	}
	return []byte("doc"), nil
}

func newReportService(t *testing.T, renderer service.Renderer) (*service.ReportService, *repository.MemoryAttendeeStore, *metrics.Metrics) {
	t.Helper()
	store := repository.NewMemoryAttendeeStore()
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewReportService(
		store,
		projection.New(func() time.Time { return evaluation }),
		renderer,
		m,
		discardLogger(),
	)
	return svc, store, m
}

func seed(t *testing.T, store repository.AttendeeStore, attendees ...model.Attendee) {
	t.Helper()
	for i := range attendees {
		require.NoError(t, store.Create(context.Background(), &attendees[i]))
	}
}

func TestReportAll(t *testing.T) {
	renderer := &recordingRenderer{}
	svc, store, m := newReportService(t, renderer)
	seed(t, store,
		model.Attendee{Name: "Anna", Surname: "Petrova", Role: model.RoleGuest, Squad: ptr(model.SquadVega)},
		model.Attendee{Name: "Pavel", Surname: "Orlov", Role: model.RoleVeteran, EventLocation: ptr(model.LocationBoth)},
	)

	rep, err := svc.All(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "complete_users_report", rep.Name)
	assert.Equal(t, "complete_users_report.docx", rep.Filename)
	assert.Equal(t, docx.ContentType, rep.ContentType)
	assert.Equal(t, []byte("doc"), rep.Content)

	assert.Equal(t, "ПОЛНЫЙ ОТЧЕТ ПО ВСЕМ ПОЛЬЗОВАТЕЛЯМ", renderer.title)
	assert.Equal(t, report.Landscape, renderer.orientation)
	assert.Len(t, renderer.table.Headers, 21)
	assert.Len(t, renderer.table.Rows, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsGenerated.WithLabelValues("all")))
}

func TestReportForRole(t *testing.T) {
	tests := []struct {
		token       string
		name        string
		title       string
		orientation report.Orientation
		columns     int
	}{
		{"guest", "guest_report", "ОТЧЕТ: ГОСТЬ", report.Portrait, 6},
		{"NOVICE", "novice_report", "ОТЧЕТ: НОВИЧОК", report.Portrait, 12},
		{"Fighter", "fighter_report", "ОТЧЕТ: БОЕЦ", report.Portrait, 13},
		{"veteran", "veteran_report", "ОТЧЕТ: СТАРИК", report.Landscape, 17},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			renderer := &recordingRenderer{}
			svc, _, _ := newReportService(t, renderer)

			rep, err := svc.ForRole(context.Background(), tt.token)
			require.NoError(t, err)

			assert.Equal(t, tt.name, rep.Name)
			assert.Equal(t, tt.name+".docx", rep.Filename)
			assert.Equal(t, tt.title, renderer.title)
			assert.Equal(t, tt.orientation, renderer.orientation)
			assert.Len(t, renderer.table.Headers, tt.columns)
			assert.True(t, renderer.table.Empty(), "no attendees yields the no-data placeholder")
		})
	}
}

func TestReportForRoleFiltersByRole(t *testing.T) {
	renderer := &recordingRenderer{}
	svc, store, _ := newReportService(t, renderer)
	seed(t, store,
		model.Attendee{Name: "Anna", Surname: "Petrova", Role: model.RoleGuest, Squad: ptr(model.SquadVega)},
		model.Attendee{Name: "Pavel", Surname: "Orlov", Role: model.RoleVeteran, EventLocation: ptr(model.LocationBoth)},
	)

	_, err := svc.ForRole(context.Background(), "guest")
	require.NoError(t, err)

	require.Len(t, renderer.table.Rows, 1)
	assert.Equal(t, "Petrova", renderer.table.Rows[0][1])
}

func TestReportForUnknownRole(t *testing.T) {
	svc, _, _ := newReportService(t, &recordingRenderer{})

	_, err := svc.ForRole(context.Background(), "captain")
	var enumErr *model.InvalidEnumError
	assert.ErrorAs(t, err, &enumErr)
}

func TestReportRenderFailure(t *testing.T) {
	boom := errors.New("boom")
	svc, _, _ := newReportService(t, &recordingRenderer{err: boom})

	_, err := svc.All(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestReportWithDocxRenderer(t *testing.T) {
	svc, store, _ := newReportService(t, docx.NewRenderer())
	seed(t, store, model.Attendee{Name: "Anna", Surname: "Petrova", Role: model.RoleGuest, Squad: ptr(model.SquadVega)})

	rep, err := svc.ForRole(context.Background(), "guest")
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), rep.Content[:2], "docx is a zip package")
}
