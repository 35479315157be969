package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldBalance         = "balance"
	FieldCycle           = "cycle"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldListingID       = "listing-id"
	FieldMessageID       = "message-id"
	FieldPrice           = "price"
	FieldQuotedPrice     = "quoted-price"
	FieldRecipient       = "recipient"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldSupply          = "supply"
	FieldTraceID         = "trace-id"
	FieldUnits           = "units"
	FieldURL             = "url"
)
