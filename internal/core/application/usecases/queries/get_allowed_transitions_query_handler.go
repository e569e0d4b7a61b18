package queries

import (
	"context"
	"database/sql"
	"errors"

	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAllowedTransitionsQueryHandler reads a parcel's current status and
// projects the role's transition table onto it.
type GetAllowedTransitionsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllowedTransitionsQueryHandler creates a handler backed by a GORM
// connection.
func NewGetAllowedTransitionsQueryHandler(db *gorm.DB) GetAllowedTransitionsQueryHandler {
	return GetAllowedTransitionsQueryHandler{db: db}
}

// Handle returns the statuses the role may move the parcel into.
func (h GetAllowedTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetAllowedTransitionsQuery,
) (GetAllowedTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllowedTransitionsQueryResponse{}, err
	}

	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM parcels
		WHERE tracking_code = ? AND NOT archived
	`, query.TrackingCode()).Row()

	err := row.Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return GetAllowedTransitionsQueryResponse{}, errs.NewObjectNotFoundError("trackingCode", query.TrackingCode())
	}
	if err != nil {
		return GetAllowedTransitionsQueryResponse{}, err
	}

	current := parcel.Status(status)

	next := parcel.AllowedNext(query.Role(), current)
	transitions := make([]AllowedTransition, 0, len(next))
	for _, s := range next {
		transitions = append(transitions, AllowedTransition{
			Status:          s.String(),
			RequiresDate:    s.RequiresDate(),
			RequiresComment: s.RequiresComment(),
		})
	}

	return GetAllowedTransitionsQueryResponse{
		CurrentStatus: current.String(),
		Transitions:   transitions,
	}, nil
}
