package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/dto"
	"roomrate/internal/app/handlers/support"
	"roomrate/internal/app/policies"
	"roomrate/internal/app/queries"
	"roomrate/internal/app/uow"
	domainpricing "roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

const (
	propertyReportKey = "calendar.property_report"
	exportReportKey   = "calendar.property_report.export"
)

type PropertyReportQuery struct {
	PropertyID string
	Month      clock.Month
}

func (q PropertyReportQuery) Key() string { return propertyReportKey }

func (q PropertyReportQuery) Validate() error {
	if q.Month.IsZero() {
		return clock.ErrInvalidMonth
	}
	return nil
}

type PropertyReportHandler struct {
	UoWFactory uow.UoWFactory
	Indexes    policies.CalendarIndexes
}

func (h *PropertyReportHandler) Handle(ctx context.Context, q PropertyReportQuery) (dto.PropertyReport, error) {
	report, err := buildPropertyReport(ctx, h.UoWFactory, h.Indexes, q.PropertyID, q.Month)
	if err != nil {
		return dto.PropertyReport{}, err
	}
	return dto.MapPropertyReport(report), nil
}

type ExportReportCommand struct {
	PropertyID string
	Month      clock.Month
}

func (c ExportReportCommand) Key() string { return exportReportKey }

func (c ExportReportCommand) Validate() error {
	if c.Month.IsZero() {
		return clock.ErrInvalidMonth
	}
	return nil
}

// ExportReportHandler writes the property report as JSON to the archive under
// reports/<property>/<yyyy-MM>.json.
type ExportReportHandler struct {
	UoWFactory uow.UoWFactory
	Indexes    policies.CalendarIndexes
	Archive    policies.ReportArchive
	Logger     *slog.Logger
}

func (h *ExportReportHandler) Handle(ctx context.Context, cmd ExportReportCommand) (*dto.ReportExport, error) {
	report, err := buildPropertyReport(ctx, h.UoWFactory, h.Indexes, cmd.PropertyID, cmd.Month)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(dto.MapPropertyReport(report))
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("reports/%s/%s.json", cmd.PropertyID, cmd.Month)
	location, err := h.Archive.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json")
	if err != nil {
		return nil, fmt.Errorf("calendar: upload report: %w", err)
	}
	if h.Logger != nil {
		h.Logger.Info("property report exported", "property_id", cmd.PropertyID, "month", cmd.Month.String(), "location", location)
	}
	return &dto.ReportExport{PropertyID: cmd.PropertyID, Month: cmd.Month.String(), Location: location}, nil
}

func buildPropertyReport(ctx context.Context, factory uow.UoWFactory, indexes policies.CalendarIndexes, propertyID string, month clock.Month) (domainpricing.PropertyReport, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, factory)
	if err != nil {
		return domainpricing.PropertyReport{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	list, err := unit.Rooms().ByProperty(ctx, domainrooms.PropertyID(propertyID))
	if err != nil {
		return domainpricing.PropertyReport{}, err
	}
	idx := make([]*domainpricing.CalendarIndex, 0, len(list))
	for _, room := range list {
		index, err := indexes.Index(ctx, room.ID, month)
		if err != nil {
			return domainpricing.PropertyReport{}, err
		}
		idx = append(idx, index)
	}
	return domainpricing.BuildPropertyReport(domainrooms.PropertyID(propertyID), month, idx), nil
}

var (
	_ queries.Handler[PropertyReportQuery, dto.PropertyReport] = (*PropertyReportHandler)(nil)
	_ commands.Handler[ExportReportCommand, *dto.ReportExport] = (*ExportReportHandler)(nil)
)
