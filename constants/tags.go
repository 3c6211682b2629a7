package constants

// OutcomeTag labels why a document landed in a given outcome list.
// Stable values (these exact strings appear in reports).
type OutcomeTag string

const (
	// Error outcomes: a detected but invalid bill.
	TagIncompleteInfo       OutcomeTag = "INCOMPLETE_INFO"
	TagNoAccommodation      OutcomeTag = "NO_ACCOMMODATION"
	TagMissingIssueDate     OutcomeTag = "CREDIT_NOTE_OR_ZEROED_MISSING_ISSUE_DATE"
	TagUnhandledException   OutcomeTag = "UNHANDLED_EXCEPTION"
	TagProcessingError      OutcomeTag = "PROCESSING_ERROR"

	// Expired outcomes.
	TagBeforeStartDateDue   OutcomeTag = "BEFORE_START_DATE_DUE"
	TagBeforeStartDateIssue OutcomeTag = "BEFORE_START_DATE_ISSUE"
	TagPeriodClosedDue      OutcomeTag = "PERIOD_CLOSED_DUE"
	TagPeriodClosedIssue    OutcomeTag = "PERIOD_CLOSED_ISSUE"

	// Duplicate outcomes.
	TagDuplicateFile OutcomeTag = "DUPLICATE_FILE"
	TagAlreadyPaid   OutcomeTag = "ALREADY_PAID"

	// Ignored outcomes: the document never became a valid bill.
	TagPDFUnreadable      OutcomeTag = "PDF_UNREADABLE"
	TagInvoiceDetail      OutcomeTag = "INVOICE_DETAIL"
	TagUndetectedProvider OutcomeTag = "UNDETECTED_PROVIDER"
)
