package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"colis/internal/adapters/out/postgres/invoicerepo"
	"colis/internal/core/application/usecases/queries"
	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type recordingTotalsRefresher struct {
	refreshedCodes []string
	err            error
}

func (r *recordingTotalsRefresher) Refresh(_ context.Context, invoiceCode string) error {
	if r.err != nil {
		return r.err
	}
	r.refreshedCodes = append(r.refreshedCodes, invoiceCode)
	return nil
}

type GetInvoiceQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	refresher *recordingTotalsRefresher
	handler   queries.GetInvoiceQueryHandler
}

func (suite *GetInvoiceQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&invoicerepo.InvoiceDTO{}))
}

func (suite *GetInvoiceQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetInvoiceQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE invoices CASCADE").Error)
	suite.refresher = &recordingTotalsRefresher{}
	suite.handler = queries.NewGetInvoiceQueryHandler(suite.db, suite.refresher)
}

func (suite *GetInvoiceQueryHandlerTestSuite) seedInvoice(invoiceCode string, ownerID kernel.UUID) {
	inv, err := invoice.NewInvoice(
		invoiceCode,
		invoice.KindMerchant,
		ownerID,
		[]string{"COL-1", "COL-2", "COL-3"},
		invoice.Totals{
			TotalPrice:            kernel.MoneyFromFloat(300),
			TotalDeliveryFee:      kernel.MoneyFromFloat(60),
			TotalFragileSurcharge: kernel.MoneyFromFloat(5),
			TotalExtraFee:         kernel.MoneyFromFloat(7.50),
			TotalRefusalFee:       kernel.ZeroMoney(),
			NetPayable:            kernel.MoneyFromFloat(227.50),
		},
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	inv.AnnotateDuplicates([]string{"COL-2"})

	repo := invoicerepo.NewGormInvoiceRepository(suite.db, mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), inv))
}

func (suite *GetInvoiceQueryHandlerTestSuite) TestHandle_ReturnsStoredInvoice() {
	ownerID := kernel.NewUUID()
	suite.seedInvoice("FAC-1", ownerID)

	query, err := queries.NewGetInvoiceQuery("FAC-1")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("FAC-1", result.InvoiceCode)
	suite.Equal("merchant", result.Kind)
	suite.Equal(ownerID, result.OwnerID)
	suite.Equal([]string{"COL-1", "COL-2", "COL-3"}, result.ParcelRefs)
	suite.Equal([]string{"COL-2"}, result.DuplicateCodes)
	suite.True(result.TotalPrice.IsEqual(kernel.MoneyFromFloat(300)))
	suite.True(result.TotalDeliveryFee.IsEqual(kernel.MoneyFromFloat(60)))
	suite.True(result.TotalFragileSurcharge.IsEqual(kernel.MoneyFromFloat(5)))
	suite.True(result.TotalExtraFee.IsEqual(kernel.MoneyFromFloat(7.50)))
	suite.True(result.TotalRefusalFee.IsZero())
	suite.True(result.NetPayable.IsEqual(kernel.MoneyFromFloat(227.50)))
	suite.False(result.Paid)
	suite.True(result.Active)
}

func (suite *GetInvoiceQueryHandlerTestSuite) TestHandle_RefreshesTotalsBeforeReading() {
	suite.seedInvoice("FAC-2", kernel.NewUUID())

	query, err := queries.NewGetInvoiceQuery("FAC-2")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal([]string{"FAC-2"}, suite.refresher.refreshedCodes)
}

func (suite *GetInvoiceQueryHandlerTestSuite) TestHandle_RefresherError_IsPropagated() {
	suite.seedInvoice("FAC-3", kernel.NewUUID())
	suite.refresher.err = errors.New("refresh failed")

	query, err := queries.NewGetInvoiceQuery("FAC-3")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().EqualError(err, "refresh failed")
}

func (suite *GetInvoiceQueryHandlerTestSuite) TestHandle_NonExistentInvoice_ReturnsNotFoundError() {
	query, err := queries.NewGetInvoiceQuery("FAC-MISSING")
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetInvoiceQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetInvoiceQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetInvoiceQuery constructor")
}

func TestGetInvoiceQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetInvoiceQueryHandlerTestSuite))
}
