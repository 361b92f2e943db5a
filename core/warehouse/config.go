package warehouse

// Config holds the data warehouse connection settings.
type Config struct {
	// ProjectID is the Google Cloud project that owns the dataset.
	ProjectID string `mapstructure:"project_id" default:"eis-prod"`
	// DatasetID is the dataset holding the shipment and end-of-day tables.
	DatasetID string `mapstructure:"dataset_id" default:"tw"`
	// Location is the job location (e.g., asia-east1). Empty lets BigQuery decide.
	Location string `mapstructure:"location" default:""`
	// CredentialsJSON is a service account key. Empty uses application default credentials.
	CredentialsJSON string `mapstructure:"credentials_json" default:""`
	// ShopID scopes the declared records to one store.
	ShopID int64 `mapstructure:"shop_id" default:"41571"`
	// ShipmentsTable is the declared shipment table.
	ShipmentsTable string `mapstructure:"shipments_table" default:"ShipData_ht"`
	// EndOfDayTable is the end-of-day feed table.
	EndOfDayTable string `mapstructure:"end_of_day_table" default:"Adidas_EOD_Data_ht"`
	// TimeoutSeconds bounds a single query.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
