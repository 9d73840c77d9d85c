package contextkeys

// Custom key type to avoid collisions with other packages.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB
// (the shared pool or a test transaction) is stored in the context.
const DBContextKey = contextKey("db")
