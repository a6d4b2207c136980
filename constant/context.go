package constant

type contextKey string

// UserIDKey carries the authenticated user id through request contexts.
const UserIDKey contextKey = "user_id"
