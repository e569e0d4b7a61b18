package parcel

import (
	"errors"
	"time"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrTrackingCodeIsRequired is returned when creating a parcel without
	// a tracking code.
	ErrTrackingCodeIsRequired = errs.NewValueIsRequiredError("trackingCode")

	// ErrParcelIsTerminal is returned when assigning a courier to a parcel
	// whose status admits no further transitions.
	ErrParcelIsTerminal = errors.New("parcel is in a terminal status")
)

// TransitionPayload carries the side data of a status change: the mandatory
// date for Scheduled/Postponed, and the operator comment and internal note.
type TransitionPayload struct {
	Date    *time.Time
	Comment string
	Note    string
}

// Parcel is the aggregate root for one physical shipment ("colis"). It owns
// the status state machine, the append-only status history, the CRBT tariff
// breakdown and the scheduling dates.
//
// Invariants:
//   - trackingCode is set at creation and never changes
//   - status is always a member of the enumeration; changes go through
//     ApplyTransition and are gated by the actor role's transition table
//   - exactly one of scheduledDate/postponedDate is set iff the status is
//     Scheduled/Postponed respectively; both are absent otherwise
//   - history only grows
//   - the tariff satisfies Tariff.Validate
type Parcel struct {
	trackingCode string
	merchantID   kernel.UUID
	courierID    *kernel.UUID
	cityID       kernel.UUID

	price kernel.Money

	isFragile     bool
	isReplacement bool
	isOpenable    bool

	status        Status
	history       History
	scheduledDate *time.Time
	postponedDate *time.Time
	comment       string
	note          string

	tariff   Tariff
	extraFee ExtraFee

	archived bool
	version  int

	isConstructed bool
}

// NewParcel creates a parcel at merchant intake. The parcel starts in New
// status with a single history entry and a zero tariff; the automatic fees
// are only fixed once the status reaches a terminal class.
func NewParcel(
	trackingCode string,
	merchantID kernel.UUID,
	cityID kernel.UUID,
	price kernel.Money,
	isFragile bool,
	isReplacement bool,
	isOpenable bool,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		price:         price,
		isFragile:     isFragile,
		isReplacement: isReplacement,
		isOpenable:    isOpenable,
		status:        New,
		history:       NewHistory(),
		isConstructed: true,
	}

	if err := errors.Join(
		p.setTrackingCode(trackingCode),
		p.setMerchantID(merchantID),
		p.setCityID(cityID),
	); err != nil {
		return nil, err
	}

	p.history.Append(New, createdAt)
	return p, nil
}

// RestoreParcel rebuilds a parcel from persistence. It trusts the stored
// state but still rejects structurally invalid identifiers and statuses.
func RestoreParcel(
	trackingCode string,
	merchantID kernel.UUID,
	courierID *kernel.UUID,
	cityID kernel.UUID,
	price kernel.Money,
	isFragile bool,
	isReplacement bool,
	isOpenable bool,
	status Status,
	history History,
	scheduledDate *time.Time,
	postponedDate *time.Time,
	comment string,
	note string,
	tariff Tariff,
	extraFee ExtraFee,
	archived bool,
	version int,
) (*Parcel, error) {
	if trackingCode == "" {
		return nil, ErrTrackingCodeIsRequired
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := merchantID.Validate(); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Parcel{
		trackingCode:  trackingCode,
		merchantID:    merchantID,
		courierID:     courierID,
		cityID:        cityID,
		price:         price,
		isFragile:     isFragile,
		isReplacement: isReplacement,
		isOpenable:    isOpenable,
		status:        status,
		history:       history,
		scheduledDate: scheduledDate,
		postponedDate: postponedDate,
		comment:       comment,
		note:          note,
		tariff:        tariff,
		extraFee:      extraFee,
		archived:      archived,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the parcel was created through a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by tracking code.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.trackingCode == other.trackingCode
}

// TrackingCode returns the unique, immutable shipment identifier.
func (p *Parcel) TrackingCode() string { return p.trackingCode }

// MerchantID returns the owning merchant reference.
func (p *Parcel) MerchantID() kernel.UUID { return p.merchantID }

// CourierID returns the assigned courier reference, nil if unassigned.
func (p *Parcel) CourierID() *kernel.UUID { return p.courierID }

// CityID returns the destination city reference.
func (p *Parcel) CityID() kernel.UUID { return p.cityID }

// Price returns the amount the end-customer owes the merchant.
func (p *Parcel) Price() kernel.Money { return p.price }

// IsFragile reports the fragility flag.
func (p *Parcel) IsFragile() bool { return p.isFragile }

// IsReplacement reports the replacement flag.
func (p *Parcel) IsReplacement() bool { return p.isReplacement }

// IsOpenable reports whether the customer may open before accepting.
func (p *Parcel) IsOpenable() bool { return p.isOpenable }

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status { return p.status }

// History returns the status timeline.
func (p *Parcel) History() History { return p.history }

// CreatedAt returns the time of the first recorded status.
func (p *Parcel) CreatedAt() time.Time {
	entries := p.history.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].At
}

// ScheduledDate returns the delivery date while status is Scheduled.
func (p *Parcel) ScheduledDate() *time.Time { return p.scheduledDate }

// PostponedDate returns the retry date while status is Postponed.
func (p *Parcel) PostponedDate() *time.Time { return p.postponedDate }

// Comment returns the latest operator comment.
func (p *Parcel) Comment() string { return p.comment }

// Note returns the latest internal note.
func (p *Parcel) Note() string { return p.note }

// Tariff returns the current CRBT breakdown.
func (p *Parcel) Tariff() Tariff { return p.tariff }

// ExtraFee returns the manually attached ad-hoc fee.
func (p *Parcel) ExtraFee() ExtraFee { return p.extraFee }

// IsArchived reports the soft-removal flag.
func (p *Parcel) IsArchived() bool { return p.archived }

// Version returns the optimistic-concurrency version of the loaded record.
func (p *Parcel) Version() int { return p.version }

// ApplyTransition validates and applies one status change on behalf of an
// actor role. On success it updates the status, appends to the history,
// maintains the scheduled/postponed XOR and stores supplied comment/note.
//
// Failure modes:
//   - TransitionNotAllowed when the target is not in the role's allowed set
//     for the current status (terminal statuses allow nothing)
//   - MissingRequiredField when the target requires a date or comment the
//     payload does not carry
func (p *Parcel) ApplyTransition(role Role, to Status, payload TransitionPayload, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	if !CanTransition(role, p.status, to) {
		return errs.NewTransitionNotAllowedError(string(role), p.status.String(), to.String())
	}

	if to.RequiresDate() && payload.Date == nil {
		return errs.NewMissingRequiredFieldError("date", to.String())
	}
	if to.RequiresComment() && payload.Comment == "" {
		return errs.NewMissingRequiredFieldError("comment", to.String())
	}

	p.status = to
	p.history.Append(to, now)

	switch {
	case to == Scheduled:
		p.scheduledDate = payload.Date
		p.postponedDate = nil
	case to == Postponed:
		p.postponedDate = payload.Date
		p.scheduledDate = nil
	default:
		p.scheduledDate = nil
		p.postponedDate = nil
	}

	if payload.Comment != "" {
		p.comment = payload.Comment
	}
	if payload.Note != "" {
		p.note = payload.Note
	}

	return nil
}

// AssignCourier assigns or reassigns the parcel to a courier. Assignment is
// refused once the parcel reached a terminal status.
func (p *Parcel) AssignCourier(courierID kernel.UUID) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	if p.status.IsTerminal() {
		return ErrParcelIsTerminal
	}

	p.courierID = &courierID
	return nil
}

// SetExtraFee attaches or replaces the operator's ad-hoc fee. The caller is
// responsible for recomputing the tariff afterwards.
func (p *Parcel) SetExtraFee(fee ExtraFee) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if fee.Value.IsNegative() {
		return errs.NewValueIsInvalidError("extraFee")
	}

	p.extraFee = fee
	return nil
}

// SetTariff replaces the derived CRBT breakdown after validating its
// internal consistency.
func (p *Parcel) SetTariff(t Tariff) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}

	p.tariff = t
	return nil
}

// Archive soft-removes the parcel. Parcels referenced by invoices are never
// physically deleted.
func (p *Parcel) Archive() {
	p.archived = true
}

func (p *Parcel) setTrackingCode(code string) error {
	if code == "" {
		return ErrTrackingCodeIsRequired
	}
	p.trackingCode = code
	return nil
}

func (p *Parcel) setMerchantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.merchantID = id
	return nil
}

func (p *Parcel) setCityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.cityID = id
	return nil
}
