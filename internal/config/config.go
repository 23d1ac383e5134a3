package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Go-Age/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Age"
	AppID       = "com.github.tartampluch.go-age"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	MsgVersionOutput = "%s version %s (%s/%s, commit %s, built %s)\n"

	CmdGUI        = "gui"
	CmdCalc       = "calc"
	CmdServe      = "serve"
	SynopsisGUI   = "Open the age calculator window"
	SynopsisCalc  = "Compute an age from a birth date"
	SynopsisServe = "Serve the age calculator HTTP API"

	UsageGUI = `gui
  Open the age calculator window. This is the default command.
`
	UsageCalc = `calc -day <DD> -month <MM> -year <YYYY> [-json] [-ics <file.ics>]
calc -vcard <file.vcf|url> [-json] [-ics <file.ics>]
  Compute an age. Exits with status 1 when the birth date is rejected.
  -vcard and the date flags are mutually exclusive.
`
	UsageServe = `serve [-conf <config.yml>] [-listen <addr>]
  Serve the age calculator HTTP API until interrupted.
`

	FlagDay        = "day"
	FlagMonth      = "month"
	FlagYear       = "year"
	FlagVCard      = "vcard"
	FlagICS        = "ics"
	FlagJSON       = "json"
	FlagConf       = "conf"
	FlagListen     = "listen"
	FlagDescDay    = "Day of birth (DD)"
	FlagDescMonth  = "Month of birth (MM)"
	FlagDescYear   = "Year of birth (YYYY)"
	FlagDescVCard  = "Read the birth date from a vCard file or http(s) URL"
	FlagDescICS    = "Write an anniversary calendar (.ics) to this path"
	FlagDescJSON   = "Print the result as JSON"
	FlagDescConf   = "Path to the YAML server configuration"
	FlagDescListen = "Listen address, overrides the configuration file"
)

// -----------------------------------------------------------------------------
// Date Input Rules
// -----------------------------------------------------------------------------

const (
	// Expected widths of the raw input fields.
	DayDigits   = 2
	MonthDigits = 2
	YearDigits  = 4

	MinMonth = 1
	MaxMonth = 12
	MinDay   = 1

	MonthsPerYear = 12
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	FormWindowWidth  = 480
	FormWindowHeight = 360

	// OutputPlaceholder is shown in the result labels before any computation.
	OutputPlaceholder = "- -"

	PlaceholderDay   = "DD"
	PlaceholderMonth = "MM"
	PlaceholderYear  = "YYYY"

	LayoutColumnsTriple = 3

	// Translation Keys
	TKeyWinTitle      = "win_title"
	TKeyLblDay        = "lbl_day"
	TKeyLblMonth      = "lbl_month"
	TKeyLblYear       = "lbl_year"
	TKeyLblYears      = "lbl_years"
	TKeyLblMonths     = "lbl_months"
	TKeyLblDays       = "lbl_days"
	TKeyBtnCalculate  = "btn_calculate"
	TKeyBtnReset      = "btn_reset"
	TKeyBtnImport     = "btn_import_vcard"
	TKeyErrEmpty      = "err_field_empty"
	TKeyErrDay        = "err_day_invalid"
	TKeyErrMonth      = "err_month_invalid"
	TKeyErrYear       = "err_year_invalid"
	TKeyErrFuture     = "err_future_date"
	TKeyErrImport     = "err_import_vcard"
	TKeyImported      = "imported_from"  // Requires Name
	TKeyNextBirthday  = "next_birthday"  // Requires Days, Age; plural on Days
	TKeyBirthdayToday = "birthday_today" // Requires Age
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Age//Engine//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goage"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour

	// Date layouts accepted in vCard BDAY fields.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// UID Generation
	UIDSalt         = "go-age-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no events are produced.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	MaxHTTPResponseSize = 1 * 1024 * 1024 // 1MB, a single vCard is a few KB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"

	DefaultListenAddr = "127.0.0.1:18081"
	DefaultRateLimit  = 5.0 // requests per second per client IP
	DefaultRateBurst  = 10
	RateLimiterTTL    = 3 * time.Minute
	RetryAfterSeconds = "1"
	AllowedMethods    = "GET, HEAD"

	RouteAge      = "/api/age"
	RouteCalendar = "/api/age.ics"
	RouteHealth   = "/healthz"
	RouteMetrics  = "/metrics"

	QueryDay   = "day"
	QueryMonth = "month"
	QueryYear  = "year"
	QueryName  = "name"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderRetryAfter   = "Retry-After"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderRequestID    = "X-Request-ID"
	HeaderConnection   = "Connection"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	ConnectionClose     = "close"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	ETagAny        = "*"
	ETagWeakPrefix = "W/"

	// MaxRequestIDLength bounds client supplied request IDs.
	MaxRequestIDLength = 128
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrValidation       = "birth date is invalid"
	ErrFutureDate       = "birth date is in the future"
	ErrNoBirthday       = "no vCard with a full birth date found"
	ErrBirthYearMissing = "vCard birth date has no year"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardOpen        = "failed to open vCard source"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrListenRequired   = "listen address is required"
	ErrConfigRead       = "failed to read server configuration"
	ErrConfigParse      = "failed to parse server configuration"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrWriteICS         = "failed to write calendar file"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrMissingInput     = "a birth date is required: use -day/-month/-year or -vcard"
	ErrVCardWithDate    = "-vcard cannot be combined with -day/-month/-year"
	ErrPanicRecovered   = "panic recovered"
	ErrImportFailed     = "vCard import failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgRateLimited  = "Too Many Requests"
	HTTPMsgHealthy      = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
	FallbackName         = "Unknown"

	FormatAgeText      = "%d years, %d months, %d days\n"
	FormatNextText     = "next birthday: %s (turning %d, in %d days)\n"
	FormatFieldErrText = "%s: %s\n"
	FormatFutureText   = "date: must be in the past\n"

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgAgeComputed   = "Age computed"
	MsgInputRejected = "Input rejected"
	MsgFormReset     = "Form reset"
	MsgVCardImported = "Birth date imported from vCard"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgHTTPRequest   = "http request"
	MsgRateLimited   = "Rate limit exceeded"
	MsgICSWritten    = "Anniversary calendar written"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyListen    = "listen"
	LogKeyValue     = "value"
	LogKeyBirth     = "birth"
	LogKeyToday     = "today"
	LogKeyYears     = "years"
	LogKeyMonths    = "months"
	LogKeyDays      = "days"
	LogKeyFields    = "fields"
	LogKeyFuture    = "future"
	LogKeyName      = "name"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyRequestID = "request_id"
	LogKeyRemote    = "remote_addr"
	LogKeyDuration  = "duration_ms"
	LogKeySizeBytes = "size_bytes"
	LogKeyStack     = "stack"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompCLI     = "cli"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricEvaluations   = "goage_evaluations_total"
	MetricFieldErrors   = "goage_field_errors_total"
	MetricLatency       = "goage_endpoint_latency_seconds"
	MetricLabelOutcome  = "outcome"
	MetricLabelField    = "field"
	MetricLabelKind     = "kind"
	MetricLabelEndpoint = "endpoint"
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeFuture       = "future"
)
