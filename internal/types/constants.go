package types

// ContextUserKey is the gin context key holding the authenticated user.
const ContextUserKey = "user"

// ContextRequestIDKey holds the request id set by the request logger.
const ContextRequestIDKey = "request_id"

const RequestIDHeader = "X-Request-ID"

const TokenCookie = "token"
