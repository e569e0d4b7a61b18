package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelTimelineQueryHandler reads the status history document of a
// parcel and unpacks it into an ordered timeline.
type GetParcelTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelTimelineQueryHandler creates a handler backed by a GORM
// connection.
func NewGetParcelTimelineQueryHandler(db *gorm.DB) GetParcelTimelineQueryHandler {
	return GetParcelTimelineQueryHandler{db: db}
}

// Handle returns the chronological status history of the parcel.
func (h GetParcelTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetParcelTimelineQuery,
) (GetParcelTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelTimelineQueryResponse{}, err
	}

	var raw []byte

	row := h.db.WithContext(ctx).Raw(`
		SELECT status_history
		FROM parcels
		WHERE tracking_code = ?
	`, query.TrackingCode()).Row()

	err := row.Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return GetParcelTimelineQueryResponse{}, errs.NewObjectNotFoundError("trackingCode", query.TrackingCode())
	}
	if err != nil {
		return GetParcelTimelineQueryResponse{}, err
	}

	var history []parcel.HistoryEntry
	if err = json.Unmarshal(raw, &history); err != nil {
		return GetParcelTimelineQueryResponse{}, err
	}

	entries := make([]TimelineEntry, 0, len(history))
	for _, e := range history {
		entries = append(entries, TimelineEntry{
			Status: e.Status.String(),
			At:     e.At,
		})
	}

	return GetParcelTimelineQueryResponse{
		TrackingCode: query.TrackingCode(),
		Entries:      entries,
	}, nil
}
