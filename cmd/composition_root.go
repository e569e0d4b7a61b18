package cmd

import (
	"context"
	"log/slog"

	"colis/internal/adapters/out/postgres"
	"colis/internal/adapters/out/postgres/directoryrepo"
	"colis/internal/core/application/usecases/commands"
	"colis/internal/core/application/usecases/queries"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB             *gorm.DB
	uowFactory         postgres.GormUnitOfWorkFactory
	directory          ports.RateProvider
	defaultCourierRate kernel.Money
	bulkWorkers        int
	bulkRetries        int
	logger             *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	defaultCourierRate := kernel.ZeroMoney()
	if configs.DefaultCourierRate != "" {
		rate, err := kernel.MoneyFromString(configs.DefaultCourierRate)
		if err != nil {
			logger.Warn("Invalid DEFAULT_COURIER_RATE, fallback disabled", "value", configs.DefaultCourierRate)
		} else {
			defaultCourierRate = rate
		}
	}

	return CompositionRoot{
		gormDB:             gormDB,
		uowFactory:         *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:          directoryrepo.NewGormDirectoryRepository(gormDB),
		defaultCourierRate: defaultCourierRate,
		bulkWorkers:        configs.BulkWorkers,
		bulkRetries:        configs.BulkRetries,
		logger:             logger,
	}
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	return commands.NewChangeStatusCommandHandler(c.parcelUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateUpdateStatusBulkCommandHandler() commands.UpdateStatusBulkCommandHandler {
	return commands.NewUpdateStatusBulkCommandHandler(
		c.parcelUoWFactory(), c.directory, c.bulkWorkers, c.bulkRetries, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierBulkCommandHandler() commands.AssignCourierBulkCommandHandler {
	return commands.NewAssignCourierBulkCommandHandler(
		c.parcelUoWFactory(), c.directory, c.bulkWorkers, c.bulkRetries, c.logger)
}

func (c *CompositionRoot) CreateSetExtraFeeCommandHandler() commands.SetExtraFeeCommandHandler {
	return commands.NewSetExtraFeeCommandHandler(c.parcelUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateBuildInvoiceCommandHandler() commands.BuildInvoiceCommandHandler {
	return commands.NewBuildInvoiceCommandHandler(c.crossUoWFactory(), c.directory, c.defaultCourierRate)
}

func (c *CompositionRoot) CreateMergeInvoicesCommandHandler() commands.MergeInvoicesCommandHandler {
	return commands.NewMergeInvoicesCommandHandler(c.crossUoWFactory(), c.directory, c.defaultCourierRate)
}

func (c *CompositionRoot) CreateMarkInvoicePaidCommandHandler() commands.MarkInvoicePaidCommandHandler {
	return commands.NewMarkInvoicePaidCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateRecomputeInvoiceTotalsCommandHandler() commands.RecomputeInvoiceTotalsCommandHandler {
	return commands.NewRecomputeInvoiceTotalsCommandHandler(c.crossUoWFactory(), c.directory, c.defaultCourierRate)
}

func (c *CompositionRoot) CreateGetTariffQueryHandler() queries.GetTariffQueryHandler {
	return queries.NewGetTariffQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllowedTransitionsQueryHandler() queries.GetAllowedTransitionsQueryHandler {
	return queries.NewGetAllowedTransitionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelTimelineQueryHandler() queries.GetParcelTimelineQueryHandler {
	return queries.NewGetParcelTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	refresher := FuncInvoiceTotalsRefresher(func(ctx context.Context, invoiceCode string) error {
		cmd, err := commands.NewRecomputeInvoiceTotalsCommand(invoiceCode)
		if err != nil {
			return err
		}
		result, err := c.CreateRecomputeInvoiceTotalsCommandHandler().Handle(ctx, cmd)
		if err != nil {
			return err
		}
		for _, s := range result.SkippedCodes {
			c.logger.WarnContext(ctx, "Invoice totals refresh skipped unpriceable parcel",
				"invoice", invoiceCode, "parcel", s.Code, "reason", s.Reason)
		}
		return nil
	})
	return queries.NewGetInvoiceQueryHandler(c.gormDB, refresher)
}

func (c *CompositionRoot) CrossUoWFactory() commands.UoWFactory {
	return c.crossUoWFactory()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncInvoiceTotalsRefresher func(ctx context.Context, invoiceCode string) error

func (f FuncInvoiceTotalsRefresher) Refresh(ctx context.Context, invoiceCode string) error {
	return f(ctx, invoiceCode)
}
