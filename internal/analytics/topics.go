package analytics

// One topic for the whole activity stream; consumers filter by event_type.
const TopicActivity = "storefront.activity"

// Partition key = trx id (or session id before one exists) so events for a
// single purchase keep their order.
func PartitionKey(id string) []byte { return []byte(id) }
