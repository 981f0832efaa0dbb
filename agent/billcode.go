package agent

import "strings"

// fallbackBillNumber is substituted when a bill code carries no digits at
// all, rather than failing the request.
const fallbackBillNumber = "7"

const (
	ChamberHouse  = "House"
	ChamberSenate = "Senate"
)

// BillRef identifies a bill to the analysis endpoint.
type BillRef struct {
	Number  string `json:"bill_number"`
	Chamber string `json:"chamber"`
}

// ParseBillCode maps a bill code string like "S.B. 7" or "HB450" to a
// BillRef. A leading S/SB prefix means Senate, H/HB means House; the number
// is whatever digits the string contains. With no digits the fallback
// number is used and the chamber is inferred from whether the string
// contains an "s".
func ParseBillCode(code string) BillRef {
	trimmed := strings.TrimSpace(code)
	upper := strings.ToUpper(trimmed)

	var chamber string
	switch {
	case strings.HasPrefix(upper, "S"):
		chamber = ChamberSenate
	case strings.HasPrefix(upper, "H"):
		chamber = ChamberHouse
	}

	number := digitsOf(trimmed)
	if number == "" {
		number = fallbackBillNumber
		if chamber == "" {
			if strings.Contains(strings.ToLower(trimmed), "s") {
				chamber = ChamberSenate
			} else {
				chamber = ChamberHouse
			}
		}
	}
	if chamber == "" {
		chamber = ChamberHouse
	}

	return BillRef{Number: number, Chamber: chamber}
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
