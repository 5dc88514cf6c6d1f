package constants

// Redis key prefixes and formats.
// Naming convention: app:{module}:{entity}[:{unique_id}]
const (
	// AppPrefix is the shared prefix for every Redis key.
	AppPrefix = "app"

	// JobModulePrefix job module
	JobModulePrefix = "job"

	// EntityList listing entity
	EntityList = "list"

	// KeyOpenJobsList careers-page open job listing cache (STRING, JSON payload)
	// format: app:job:list:open
	KeyOpenJobsList = AppPrefix + ":" + JobModulePrefix + ":" + EntityList + ":open"
)
