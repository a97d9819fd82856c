package dynamo

// DynamoDB attribute names used in update and condition expressions across
// all repos. Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldPaid          = "paid"
	fieldTransactionID = "transaction_id"
	fieldStatus        = "status"
	fieldImageURL      = "image_url"
	fieldUpdatedAt     = "updated_at"
)
