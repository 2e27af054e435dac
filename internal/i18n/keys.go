package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyInvalidCredentials covers both unknown users and wrong passwords.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyMethodNotAllowed   = "error.method_not_allowed"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyMissingParameters  = "error.missing_parameters"
	ErrKeyUnsupportedDataset = "error.unsupported_dataset"
	ErrKeyInvalidForm        = "error.invalid_form"
	ErrKeyAttachment         = "error.attachment_unreadable"
	ErrKeyServerConfig       = "error.server_configuration"
	ErrKeyStoreUnavailable   = "error.store_unavailable"
)

// Carrier error translation keys. The carrier's own message is returned in
// the error details so it is never lost in translation.
const (
	ErrKeyCarrierAuth        = "error.carrier.authentication"
	ErrKeyCarrierInvalidBody = "error.carrier.invalid_response"
	ErrKeyCarrierRejected    = "error.carrier.rejected"
	ErrKeyCarrierUnavailable = "error.carrier.unavailable"
	ErrKeyCarrierTimeout     = "error.carrier.timeout"
)
