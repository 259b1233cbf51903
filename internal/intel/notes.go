package intel

import "strings"

// Notes derives a human-readable tactic summary from the current record.
// It is a pure function of the record, not of history: the wording may
// change turn to turn as intelligence accumulates. Hard-signal tactics
// (payment redirection, phishing links) are listed before keyword-derived
// ones so the strongest observation always leads.
func Notes(rec Record) string {
	var tactics []string

	if len(rec.PaymentIdentifiers) > 0 || len(rec.AccountNumbers) > 0 {
		tactics = append(tactics, "attempts payment redirection")
	}
	if len(rec.Links) > 0 {
		tactics = append(tactics, "shares phishing links")
	}
	if len(rec.PhoneNumbers) > 0 {
		tactics = append(tactics, "pushes contact to a callback number")
	}
	if hasAny(rec.RiskKeywords, urgencyTerms) {
		tactics = append(tactics, "applies urgency or account-suspension pressure")
	}
	if hasAny(rec.RiskKeywords, credentialTerms) {
		tactics = append(tactics, "solicits credentials or identity verification")
	}

	if len(tactics) == 0 {
		return "Engagement ongoing; no actionable signals captured yet."
	}
	return "Observed tactics: " + strings.Join(tactics, "; ") + "."
}

func hasAny(keywords []string, terms map[string]bool) bool {
	for _, k := range keywords {
		if terms[k] {
			return true
		}
	}
	return false
}
