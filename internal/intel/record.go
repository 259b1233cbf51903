package intel

// Record holds categorized intelligence accumulated from a scammer's messages.
// Each category is a deduplicated set; first-seen order is preserved so
// reports are deterministic.
type Record struct {
	PaymentIdentifiers []string `json:"paymentIdentifiers"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	Links              []string `json:"links"`
	AccountNumbers     []string `json:"accountNumbers"`
	EmailAddresses     []string `json:"emailAddresses"`
	RiskKeywords       []string `json:"riskKeywords"`
}

// NewRecord returns an empty record. Slices are allocated so the record
// always serializes as arrays, never null.
func NewRecord() Record {
	return Record{
		PaymentIdentifiers: []string{},
		PhoneNumbers:       []string{},
		Links:              []string{},
		AccountNumbers:     []string{},
		EmailAddresses:     []string{},
		RiskKeywords:       []string{},
	}
}

// Merge unions frag into r category by category. Comparison is exact string
// equality; duplicates are dropped, new values append in first-seen order.
// Merging the same fragment twice is a no-op the second time.
func (r *Record) Merge(frag Record) {
	r.PaymentIdentifiers = unionInto(r.PaymentIdentifiers, frag.PaymentIdentifiers)
	r.PhoneNumbers = unionInto(r.PhoneNumbers, frag.PhoneNumbers)
	r.Links = unionInto(r.Links, frag.Links)
	r.AccountNumbers = unionInto(r.AccountNumbers, frag.AccountNumbers)
	r.EmailAddresses = unionInto(r.EmailAddresses, frag.EmailAddresses)
	r.RiskKeywords = unionInto(r.RiskKeywords, frag.RiskKeywords)
}

// Clone returns a deep copy, safe to hand outside the session lock.
func (r Record) Clone() Record {
	return Record{
		PaymentIdentifiers: append([]string{}, r.PaymentIdentifiers...),
		PhoneNumbers:       append([]string{}, r.PhoneNumbers...),
		Links:              append([]string{}, r.Links...),
		AccountNumbers:     append([]string{}, r.AccountNumbers...),
		EmailAddresses:     append([]string{}, r.EmailAddresses...),
		RiskKeywords:       append([]string{}, r.RiskKeywords...),
	}
}

// HasHardSignal reports whether the record contains at least one payment
// identifier, phone number, or link — the signals strong enough to justify
// ending an engagement early.
func (r Record) HasHardSignal() bool {
	return len(r.PaymentIdentifiers) > 0 || len(r.PhoneNumbers) > 0 || len(r.Links) > 0
}

// Empty reports whether no category holds any value.
func (r Record) Empty() bool {
	return len(r.PaymentIdentifiers) == 0 &&
		len(r.PhoneNumbers) == 0 &&
		len(r.Links) == 0 &&
		len(r.AccountNumbers) == 0 &&
		len(r.EmailAddresses) == 0 &&
		len(r.RiskKeywords) == 0
}

func unionInto(dst, src []string) []string {
	for _, v := range src {
		if !contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
