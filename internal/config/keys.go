package config

// Configuration keys. Nested keys map to environment variables with dots
// replaced by underscores and the REELFANG_ prefix, e.g. REELFANG_FETCH_TIMEOUT.
const (
	PlatformDomain   = "platform.domain"
	PlatformLiteHost = "platform.lite_host"
	PlatformFullHost = "platform.full_host"

	Channels = "channels"

	FetchMode             = "fetch.mode"
	FetchUserAgent        = "fetch.user_agent"
	FetchTimeout          = "fetch.timeout"
	FetchMaxResponseSize  = "fetch.max_response_size"
	FetchProxy            = "fetch.proxy"
	FetchHeaders          = "fetch.headers"
	FetchDisableRedirects = "fetch.disable_redirects"

	ValidateMinBodyLength = "validate.min_body_length"

	ExtractMediaHosts      = "extract.media_hosts"
	ExtractMediaExtensions = "extract.media_extensions"

	BatchParallelism = "batch.parallelism"

	BrowserBin         = "browser.bin"
	BrowserTimeout     = "browser.timeout"
	BrowserPageTimeout = "browser.page_timeout"

	ServerAddr           = "server.addr"
	ServerRequestTimeout = "server.request_timeout"
	ServerMetrics        = "server.metrics"

	LogLevel = "log.level"
	LogJSON  = "log.json"
)
