package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	BulkWorkers int
	BulkRetries int

	// DefaultCourierRate is the flat per-parcel payout used for courier
	// invoices when no rate entry covers a parcel. Zero disables the
	// fallback: uncovered parcels are then skipped and reported.
	DefaultCourierRate string
}
