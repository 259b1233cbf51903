package intel

import (
	"regexp"
	"strings"
)

// Extraction is deliberately permissive: the ledger deduplicates and an
// analyst reviews the final report, so a false positive costs nothing while
// a missed identifier is lost for good once the scammer moves on.
var (
	// Payment-handle tokens like name@provider. The provider segment needs
	// no dot, which means this also matches the front of ordinary email
	// addresses. That overlap is intentional; emails are captured separately.
	paymentHandleRe = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9.+_-]*@[A-Za-z][A-Za-z0-9]+`)

	// Full email addresses, domain with a dot and TLD.
	emailRe = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9.+_-]*@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}`)

	// Regional mobile numbers: ten digits starting 6-9, with an optional
	// country-code prefix. Guarded by non-digits on both sides so a number
	// buried in a longer digit run is not split out of it.
	phoneRe = regexp.MustCompile(`(?:^|[^\d])((?:\+?91[\s-]?)?[6-9]\d{9})(?:[^\d]|$)`)

	linkRe = regexp.MustCompile(`https?://[^\s]+`)

	// Candidate bank account numbers: 12-18 digit runs.
	accountRe = regexp.MustCompile(`(?:^|[^\d])(\d{12,18})(?:[^\d]|$)`)
)

// riskVocabulary is the fixed keyword list signaling fraud framing.
// Matching is case-insensitive substring; the vocabulary term itself is
// recorded, not the message token.
var riskVocabulary = []string{
	// urgency pressure
	"urgent",
	"immediately",
	"act now",
	"last warning",
	"within 24 hours",
	// identity verification / credential phishing
	"verify",
	"kyc",
	"otp",
	"password",
	"pin",
	"aadhaar",
	"pan card",
	// suspension and blocking language
	"blocked",
	"suspended",
	"deactivated",
	"expire",
	// payment systems
	"upi",
	"paytm",
	"phonepe",
	"gpay",
	"net banking",
	"bank account",
	// action verbs
	"click",
	"transfer",
	"pay now",
	// lure framing
	"lottery",
	"prize",
	"refund",
}

var (
	urgencyTerms = map[string]bool{
		"urgent": true, "immediately": true, "act now": true,
		"last warning": true, "within 24 hours": true,
		"blocked": true, "suspended": true, "deactivated": true, "expire": true,
	}
	credentialTerms = map[string]bool{
		"verify": true, "kyc": true, "otp": true, "password": true,
		"pin": true, "aadhaar": true, "pan card": true,
	}
)

// Extract scans raw message text and returns every candidate signal found.
// It is stateless and total: no matches yields a record of empty sets.
func Extract(text string) Record {
	rec := NewRecord()

	rec.PaymentIdentifiers = unionInto(rec.PaymentIdentifiers, paymentHandleRe.FindAllString(text, -1))
	rec.EmailAddresses = unionInto(rec.EmailAddresses, emailRe.FindAllString(text, -1))
	rec.Links = unionInto(rec.Links, linkRe.FindAllString(text, -1))

	for _, m := range phoneRe.FindAllStringSubmatch(text, -1) {
		rec.PhoneNumbers = unionInto(rec.PhoneNumbers, []string{m[1]})
	}
	for _, m := range accountRe.FindAllStringSubmatch(text, -1) {
		rec.AccountNumbers = unionInto(rec.AccountNumbers, []string{m[1]})
	}

	rec.RiskKeywords = unionInto(rec.RiskKeywords, MatchKeywords(text))
	return rec
}

// MatchKeywords returns the vocabulary terms present in text, in
// vocabulary order.
func MatchKeywords(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, term := range riskVocabulary {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// Classify reports whether the message reads as a scam attempt: true iff
// any risk-vocabulary term matches. Callers latch this per session; a later
// false never un-confirms an earlier true.
func Classify(text string) bool {
	return len(MatchKeywords(text)) > 0
}
