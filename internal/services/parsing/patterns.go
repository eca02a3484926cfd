package parsing

import "regexp"

// Known payment-handle suffixes for payment addresses. Restricting the
// part after "@" to this set keeps generic email addresses from being
// misread as payment addresses.
const vpaHandleAlternation = `(?:upi|paytm|ptyes|ptaxis|pthdfc|ptsbi|ybl|yapl|ibl|axl|apl|okhdfcbank|okicici|oksbi|okaxis|okbizaxis|axisbank|barodampay|fbl|freecharge|ikwik|airtel|hdfcbank|icici|sbi|kotak|rbl|idfcbank|jupiteraxis|naviaxis|waaxis|wahdfcbank|waicici|wasbi)`

// Payment-address token: local part of letters, digits, dot,
// underscore, hyphen, followed by a known handle.
const vpaToken = `[A-Za-z0-9][A-Za-z0-9._-]*@` + vpaHandleAlternation

var (
	// Currency-prefixed amount, e.g. "Rs.450", "INR 1,23,456.78"
	amountPattern = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*([0-9]+(?:,[0-9]+)*(?:\.[0-9]{1,2})?)`)

	// UPI keyword anywhere in the body; combined with a bank short-code
	// sender this routes a message to the instant-payment variant.
	upiKeywordPattern = regexp.MustCompile(`(?i)\bupi\b`)

	// One-time-code detection: the OTP word plus a numeric code.
	otpWordPattern = regexp.MustCompile(`(?i)\botp\b|\bone[\s-]?time\s+password\b|\bverification\s+code\b`)
	otpCodePattern = regexp.MustCompile(`\b[0-9]{4,8}\b`)

	// Sender short-codes, e.g. "VM-HDFCBK", "AX-SBIINB-S", "PAYTMB".
	// Plain phone numbers do not match.
	senderShortCodePattern = regexp.MustCompile(`(?i)^(?:[a-z]{2}-)?[a-z][a-z0-9]{2,10}(?:-[a-z])?$`)

	// Payment-address candidates in priority order: explicit label,
	// relational context, first bare occurrence.
	vpaLabelPattern    = regexp.MustCompile(`(?i)\b(?:vpa|upi\s*id)\s*:?\s*(` + vpaToken + `)\b`)
	vpaRelationPattern = regexp.MustCompile(`(?i)\b(?:sent\s+to|paid\s+to|received\s+from|to|from)\s+(` + vpaToken + `)\b`)
	vpaBarePattern     = regexp.MustCompile(`(?i)(` + vpaToken + `)\b`)

	// Account suffix: 4-6 trailing digits after an account indicator,
	// optionally masked ("A/c XX1234", "Card *4321"). Full-length
	// account numbers never match the fixed-width capture.
	accountSuffixPattern = regexp.MustCompile(`(?i)\b(?:a/c|acct|account|card)\s*(?:no\.?\s*)?[x*]*([0-9]{4,6})\b`)

	// Balance-after: currency amount following a balance indicator.
	balancePattern = regexp.MustCompile(`(?i)\b(?:avl\.?\s*bal(?:ance)?|available\s+bal(?:ance)?|bal(?:ance)?)\s*:?\s*(?:is\s+)?(?:rs\.?|inr|₹)\s*([0-9]+(?:,[0-9]+)*(?:\.[0-9]{1,2})?)`)

	// Location: tokens after an "at" marker, up to punctuation or a
	// trailing date clause.
	locationPattern = regexp.MustCompile(`(?i)\bat\s+([A-Za-z][A-Za-z0-9&' -]*?)(?:\s+on\s+[0-9]|[.,;:!\n]|$)`)

	whitespacePattern = regexp.MustCompile(`\s+`)

	// Date-ish token, used to trim trailing date fragments from
	// free-text captures ("01-Jan-26", "01/01/2026").
	dateTokenPattern = regexp.MustCompile(`(?i)^[0-9]{1,2}[-/][a-z0-9]{2,3}[-/][0-9]{2,4}$|^[0-9]{1,2}[-/][0-9]{1,2}$`)
)

// directionRule maps a keyword pattern to a direction class. The rule
// order is the tie-break when two keywords start at the same offset.
type directionRule struct {
	re  *regexp.Regexp
	dir Direction
}

var directionRules = []directionRule{
	{regexp.MustCompile(`(?i)\btransferred\s+to\b`), DirectionDebit},
	{regexp.MustCompile(`(?i)\bdebited\b`), DirectionDebit},
	{regexp.MustCompile(`(?i)\bwithdrawn\b`), DirectionDebit},
	{regexp.MustCompile(`(?i)\bpaid\b`), DirectionDebit},
	{regexp.MustCompile(`(?i)\bsent\b`), DirectionDebit},
	{regexp.MustCompile(`(?i)\bspent\b`), DirectionDebit},
	{regexp.MustCompile(`(?i)\bcredited\b`), DirectionCredit},
	{regexp.MustCompile(`(?i)\breceived\b`), DirectionCredit},
	{regexp.MustCompile(`(?i)\brefund(?:ed)?\b`), DirectionCredit},
	{regexp.MustCompile(`(?i)\bdeposited\b`), DirectionCredit},
}

// Neutral transactional keywords: enough to classify a bank message as
// a transaction notice, but carrying no direction class. Such messages
// surface with DirectionUnknown in the generic-bank flow.
var neutralKeywordPattern = regexp.MustCompile(`(?i)\btransaction\b|\btxn\s+of\b|\btransferred\b`)

// referenceRule is one labeled reference-id pattern. Rules are tried in
// order; the first label present anywhere in the body wins even when a
// lower-priority label also appears.
type referenceRule struct {
	label string
	re    *regexp.Regexp
}

var referenceRules = []referenceRule{
	// App-specific transaction ids outrank everything.
	{"app", regexp.MustCompile(`(?i)\b(?:google\s+pay|gpay|phonepe|paytm|bhim)\s+(?:txn|ref)\s*id[\s:#.-]+([A-Za-z0-9]+)`)},
	// UPI retrieval reference number.
	{"upi", regexp.MustCompile(`(?i)\bupi\s*ref(?:\s+no)?[\s:#.-]+([0-9]+)`)},
	// Bank settlement id.
	{"utr", regexp.MustCompile(`(?i)\butr[\s:#.-]+([A-Za-z0-9]+)`)},
	// Generic transaction/reference label.
	{"generic", regexp.MustCompile(`(?i)\b(?:txn\s*id|ref(?:erence)?(?:\s+no)?)[\s:#.-]+([A-Za-z0-9]+)`)},
}

// merchantRule is one explicit counterparty phrase. Evaluated in order,
// first match wins; more specific phrases sit before the bare ones.
type merchantRule struct {
	re *regexp.Regexp
}

const merchantCapture = `([A-Za-z][A-Za-z0-9&' -]*?)`
const merchantStop = `(?:\s+(?:via|using|through|on|for|with|upi|ref|txn|utr|info|avl|bal)\b|[.,;:!\n]|$)`

var merchantRules = []merchantRule{
	{regexp.MustCompile(`(?i)\bpaid\s+to\s+` + merchantCapture + merchantStop)},
	{regexp.MustCompile(`(?i)\bsent\s+to\s+` + merchantCapture + merchantStop)},
	{regexp.MustCompile(`(?i)\btransferred\s+to\s+` + merchantCapture + merchantStop)},
	{regexp.MustCompile(`(?i)\breceived\s+from\s+` + merchantCapture + merchantStop)},
	{regexp.MustCompile(`(?i)\bto\s+` + merchantCapture + merchantStop)},
	{regexp.MustCompile(`(?i)\bat\s+` + merchantCapture + merchantStop)},
}

// Trailing legal-entity suffixes stripped from merchant names, longest
// first so compound forms go before their tails.
var legalSuffixes = []string{
	"private limited",
	"pvt ltd",
	"pvt. ltd.",
	"pvt. ltd",
	"limited",
	"company",
	"ltd",
	"inc",
	"co",
}

// Balance-enquiry phrasing. "balance is" marks an enquiry unless it is
// part of an available-balance report trailing a completed transaction.
var (
	balanceEnquiryPattern   = regexp.MustCompile(`(?i)\bbalance\s+is\b`)
	availableBalancePattern = regexp.MustCompile(`(?i)\b(?:avl\.?|available)\s*bal(?:ance)?\s+is\b`)
)

// Phrases that mark a message as promotional even when an amount and a
// direction keyword are present.
var exclusionPhrases = []string{
	"apply now",
	"interest rate",
	"pre-approved",
	"loan offer",
	"offer expires",
	"emi starting",
}

// Sender fragments identifying known payment apps.
var paymentAppSenders = []string{
	"GPAY",
	"GOOGLEPAY",
	"PHONEPE",
	"PAYTM",
	"BHIM",
}
