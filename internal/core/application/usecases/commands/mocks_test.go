package commands_test

import (
	"context"
	"sync"

	"colis/internal/core/application/usecases/commands"
	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
	"colis/internal/core/domain/services"
	"colis/internal/core/ports"
	"colis/internal/pkg/errs"
)

// In-memory doubles for the unit of work stack. Bulk handlers spin one
// unit of work per item across goroutines, so the stores are mutex-guarded
// and shared between all created instances.

type fakeParcelStore struct {
	mu      sync.Mutex
	parcels map[string]*parcel.Parcel

	// updateErrs injects one failure per code, consumed on first use.
	updateErrs map[string]error
}

func newFakeParcelStore() *fakeParcelStore {
	return &fakeParcelStore{
		parcels:    make(map[string]*parcel.Parcel),
		updateErrs: make(map[string]error),
	}
}

func (s *fakeParcelStore) put(p *parcel.Parcel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parcels[p.TrackingCode()] = p
}

func (s *fakeParcelStore) get(code string) *parcel.Parcel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parcels[code]
}

type fakeInvoiceStore struct {
	mu       sync.Mutex
	invoices map[string]*invoice.Invoice
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: make(map[string]*invoice.Invoice)}
}

func (s *fakeInvoiceStore) put(inv *invoice.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.InvoiceCode()] = inv
}

func (s *fakeInvoiceStore) get(code string) *invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoices[code]
}

func (s *fakeInvoiceStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

// cloneParcel rehydrates a detached copy, the way a real repository read
// would. Handlers must not observe each other's uncommitted mutations.
func cloneParcel(p *parcel.Parcel) *parcel.Parcel {
	cp, err := parcel.RestoreParcel(
		p.TrackingCode(), p.MerchantID(), p.CourierID(), p.CityID(),
		p.Price(), p.IsFragile(), p.IsReplacement(), p.IsOpenable(),
		p.Status(), parcel.RestoreHistory(p.History().Entries()),
		p.ScheduledDate(), p.PostponedDate(), p.Comment(), p.Note(),
		p.Tariff(), p.ExtraFee(), p.IsArchived(), p.Version())
	if err != nil {
		panic(err)
	}
	return cp
}

type fakeParcelRepository struct {
	store *fakeParcelStore
}

func (r *fakeParcelRepository) Add(_ context.Context, p *parcel.Parcel) error {
	r.store.put(p)
	return nil
}

func (r *fakeParcelRepository) Update(_ context.Context, p *parcel.Parcel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err, ok := r.store.updateErrs[p.TrackingCode()]; ok {
		delete(r.store.updateErrs, p.TrackingCode())
		return err
	}
	if _, ok := r.store.parcels[p.TrackingCode()]; !ok {
		return errs.NewObjectNotFoundError("parcel", p.TrackingCode())
	}
	r.store.parcels[p.TrackingCode()] = p
	return nil
}

func (r *fakeParcelRepository) GetByTrackingCode(_ context.Context, code string) (*parcel.Parcel, error) {
	if p := r.store.get(code); p != nil {
		return cloneParcel(p), nil
	}
	return nil, errs.NewObjectNotFoundError("parcel", code)
}

func (r *fakeParcelRepository) GetByTrackingCodes(_ context.Context, codes []string) ([]*parcel.Parcel, error) {
	seen := make(map[string]bool, len(codes))
	out := make([]*parcel.Parcel, 0, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		if p := r.store.get(code); p != nil {
			out = append(out, cloneParcel(p))
		}
	}
	return out, nil
}

func (r *fakeParcelRepository) FindForInvoice(_ context.Context, filter ports.ParcelFilter) ([]*parcel.Parcel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]*parcel.Parcel, 0)
	for _, p := range r.store.parcels {
		if p.IsArchived() {
			continue
		}
		if filter.MerchantID != nil && !p.MerchantID().IsEqual(*filter.MerchantID) {
			continue
		}
		if filter.CourierID != nil && (p.CourierID() == nil || !p.CourierID().IsEqual(*filter.CourierID)) {
			continue
		}
		if len(filter.StatusIn) > 0 {
			match := false
			for _, s := range filter.StatusIn {
				if p.Status() == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, cloneParcel(p))
	}
	return out, nil
}

type fakeInvoiceRepository struct {
	store *fakeInvoiceStore
}

func (r *fakeInvoiceRepository) Add(_ context.Context, inv *invoice.Invoice) error {
	r.store.put(inv)
	return nil
}

func (r *fakeInvoiceRepository) Update(_ context.Context, inv *invoice.Invoice) error {
	r.store.put(inv)
	return nil
}

func (r *fakeInvoiceRepository) GetByCode(_ context.Context, code string) (*invoice.Invoice, error) {
	if inv := r.store.get(code); inv != nil {
		return inv, nil
	}
	return nil, errs.NewObjectNotFoundError("invoice", code)
}

func (r *fakeInvoiceRepository) GetActiveCodes(_ context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	codes := make([]string, 0)
	for code, inv := range r.store.invoices {
		if inv.IsActive() {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

type fakeUoW struct {
	parcels  *fakeParcelStore
	invoices *fakeInvoiceStore
}

func (u *fakeUoW) Begin(context.Context) error    { return nil }
func (u *fakeUoW) Commit(context.Context) error   { return nil }
func (u *fakeUoW) Rollback(context.Context) error { return nil }

func (u *fakeUoW) ParcelRepository() ports.ParcelRepository {
	return &fakeParcelRepository{store: u.parcels}
}

func (u *fakeUoW) InvoiceRepository() ports.InvoiceRepository {
	return &fakeInvoiceRepository{store: u.invoices}
}

type fakeUoWFactory struct {
	parcels  *fakeParcelStore
	invoices *fakeInvoiceStore
}

func newFakeUoWFactory() *fakeUoWFactory {
	return &fakeUoWFactory{
		parcels:  newFakeParcelStore(),
		invoices: newFakeInvoiceStore(),
	}
}

func (f *fakeUoWFactory) Create() commands.UoW {
	return &fakeUoW{parcels: f.parcels, invoices: f.invoices}
}

// parcelUoWFactory adapts the fake to the parcel-only factory interface.
type parcelUoWFactory struct {
	inner *fakeUoWFactory
}

func (f parcelUoWFactory) Create() commands.ParcelUoW {
	return f.inner.Create()
}

// fakeRateProvider serves a single rate for every city, with injectable
// failures and a configurable courier directory.
type fakeRateProvider struct {
	mu            sync.Mutex
	rate          services.Rate
	rateErr       error
	rateErrBudget int // how many calls fail before recovery; -1 is always
	knownCouriers map[string]bool
	calls         int
}

func newFakeRateProvider(rate services.Rate) *fakeRateProvider {
	return &fakeRateProvider{
		rate:          rate,
		knownCouriers: make(map[string]bool),
	}
}

func (f *fakeRateProvider) failWith(err error, budget int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rateErr = err
	f.rateErrBudget = budget
}

func (f *fakeRateProvider) RateFor(_ context.Context, _ kernel.UUID, _ *kernel.UUID) (services.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.rateErr != nil && f.rateErrBudget != 0 {
		if f.rateErrBudget > 0 {
			f.rateErrBudget--
		}
		return services.Rate{}, f.rateErr
	}
	return f.rate, nil
}

func (f *fakeRateProvider) CourierExists(_ context.Context, courierID kernel.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.knownCouriers[courierID.String()], nil
}
