package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"colis/internal/core/application/usecases/commands"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
	"colis/internal/core/domain/services"
	"colis/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parcelInStatus builds a parcel and walks it to the wanted status through
// the admin table.
func parcelInStatus(t *testing.T, code string, status parcel.Status) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(
		code, kernel.NewUUID(), kernel.NewUUID(),
		kernel.MoneyFromFloat(100), false, false, false,
		time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	if status == parcel.New {
		return p
	}

	path := map[parcel.Status][]parcel.Status{
		parcel.PickedUp:       {parcel.PickedUp},
		parcel.ReceivedAtHub:  {parcel.PickedUp, parcel.ReceivedAtHub},
		parcel.OutForDelivery: {parcel.PickedUp, parcel.ReceivedAtHub, parcel.OutForDelivery},
		parcel.Delivered:      {parcel.PickedUp, parcel.ReceivedAtHub, parcel.OutForDelivery, parcel.Delivered},
	}[status]
	require.NotEmpty(t, path, "no admin path to %s wired in test helper", status)

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for _, s := range path {
		require.NoError(t, p.ApplyTransition(parcel.RoleAdmin, s, parcel.TransitionPayload{}, now))
		now = now.Add(time.Minute)
	}
	return p
}

func defaultRate() services.Rate {
	return services.Rate{
		Delivery:    kernel.MoneyFromFloat(30),
		Refusal:     kernel.MoneyFromFloat(15),
		Fragile:     kernel.MoneyFromFloat(5),
		CourierRate: kernel.MoneyFromFloat(12),
	}
}

func TestUpdateStatusBulkCommandHandler_Handle(t *testing.T) {
	t.Run("partitions mixed batch into succeeded and failed", func(t *testing.T) {
		factory := newFakeUoWFactory()
		factory.parcels.put(parcelInStatus(t, "X1", parcel.OutForDelivery))
		factory.parcels.put(parcelInStatus(t, "X3", parcel.OutForDelivery))

		handler := commands.NewUpdateStatusBulkCommandHandler(
			parcelUoWFactory{factory}, newFakeRateProvider(defaultRate()), 4, 0, testLogger())

		cmd, err := commands.NewUpdateStatusBulkCommand(
			[]string{"X1", "BAD", "X3"}, parcel.Delivered, parcel.RoleAdmin, nil, "", "")
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"X1", "X3"}, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "BAD", result.Failed[0].Code)
		assert.Equal(t, commands.ReasonNotFound, result.Failed[0].Reason)

		assert.Equal(t, parcel.Delivered, factory.parcels.get("X1").Status())
		assert.Equal(t, parcel.Delivered, factory.parcels.get("X3").Status())
	})

	t.Run("finalizing status writes the recomputed tariff", func(t *testing.T) {
		factory := newFakeUoWFactory()
		factory.parcels.put(parcelInStatus(t, "X1", parcel.OutForDelivery))

		handler := commands.NewUpdateStatusBulkCommandHandler(
			parcelUoWFactory{factory}, newFakeRateProvider(defaultRate()), 2, 0, testLogger())

		cmd, err := commands.NewUpdateStatusBulkCommand(
			[]string{"X1"}, parcel.Delivered, parcel.RoleAdmin, nil, "", "")
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, result.Succeeded, 1)

		tariff := factory.parcels.get("X1").Tariff()
		assert.True(t, tariff.DeliveryFee.IsEqual(kernel.MoneyFromFloat(30)))
		assert.True(t, tariff.PayableToMerchant.IsEqual(kernel.MoneyFromFloat(70)))
	})

	t.Run("disallowed transition fails only its own item", func(t *testing.T) {
		factory := newFakeUoWFactory()
		factory.parcels.put(parcelInStatus(t, "FRESH", parcel.New))
		factory.parcels.put(parcelInStatus(t, "READY", parcel.OutForDelivery))

		handler := commands.NewUpdateStatusBulkCommandHandler(
			parcelUoWFactory{factory}, newFakeRateProvider(defaultRate()), 4, 0, testLogger())

		cmd, err := commands.NewUpdateStatusBulkCommand(
			[]string{"FRESH", "READY"}, parcel.Delivered, parcel.RoleAdmin, nil, "", "")
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, []string{"READY"}, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "FRESH", result.Failed[0].Code)
		assert.Equal(t, commands.ReasonTransitionNotAllowed, result.Failed[0].Reason)

		// the rejected parcel is untouched
		assert.Equal(t, parcel.New, factory.parcels.get("FRESH").Status())
	})

	t.Run("retries collaborator timeouts and succeeds", func(t *testing.T) {
		factory := newFakeUoWFactory()
		factory.parcels.put(parcelInStatus(t, "X1", parcel.OutForDelivery))

		rates := newFakeRateProvider(defaultRate())
		rates.failWith(errs.NewCollaboratorUnavailableError("rate lookup", errors.New("timeout")), 1)

		handler := commands.NewUpdateStatusBulkCommandHandler(
			parcelUoWFactory{factory}, rates, 2, 2, testLogger())

		cmd, err := commands.NewUpdateStatusBulkCommand(
			[]string{"X1"}, parcel.Delivered, parcel.RoleAdmin, nil, "", "")
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, []string{"X1"}, result.Succeeded)
		assert.Empty(t, result.Failed)
	})

	t.Run("exhausted retries report the collaborator failure", func(t *testing.T) {
		factory := newFakeUoWFactory()
		factory.parcels.put(parcelInStatus(t, "X1", parcel.OutForDelivery))

		rates := newFakeRateProvider(defaultRate())
		rates.failWith(errs.NewCollaboratorUnavailableError("rate lookup", errors.New("down")), -1)

		handler := commands.NewUpdateStatusBulkCommandHandler(
			parcelUoWFactory{factory}, rates, 2, 2, testLogger())

		cmd, err := commands.NewUpdateStatusBulkCommand(
			[]string{"X1"}, parcel.Delivered, parcel.RoleAdmin, nil, "", "")
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Empty(t, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, commands.ReasonCollaboratorUnavailable, result.Failed[0].Reason)
	})

	t.Run("concurrency conflicts are reported, not retried", func(t *testing.T) {
		factory := newFakeUoWFactory()
		factory.parcels.put(parcelInStatus(t, "X1", parcel.OutForDelivery))
		factory.parcels.updateErrs["X1"] = errs.NewConcurrentModificationError("parcel", "X1")

		handler := commands.NewUpdateStatusBulkCommandHandler(
			parcelUoWFactory{factory}, newFakeRateProvider(defaultRate()), 2, 2, testLogger())

		cmd, err := commands.NewUpdateStatusBulkCommand(
			[]string{"X1"}, parcel.Delivered, parcel.RoleAdmin, nil, "", "")
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, commands.ReasonConcurrentModification, result.Failed[0].Reason)
	})

	t.Run("rejects a command that was not constructed", func(t *testing.T) {
		handler := commands.NewUpdateStatusBulkCommandHandler(
			parcelUoWFactory{newFakeUoWFactory()}, newFakeRateProvider(defaultRate()), 2, 0, testLogger())

		_, err := handler.Handle(t.Context(), commands.UpdateStatusBulkCommand{})

		require.Error(t, err)
	})
}
