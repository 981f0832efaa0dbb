package models

// DirectiveKind tags the inline follow-up widget an assistant message asks
// the client to render.
type DirectiveKind string

const (
	DirectiveNone           DirectiveKind = ""
	DirectiveRequestAddress DirectiveKind = "request_address"
	DirectiveShowBills      DirectiveKind = "show_bills"
)

// Directive is a tagged variant: Bills is only populated for
// DirectiveShowBills. Use the constructors below so the two can't drift.
type Directive struct {
	Kind  DirectiveKind `json:"kind,omitempty"`
	Bills []Bill        `json:"bills,omitempty"`
}

func NoDirective() Directive {
	return Directive{}
}

func RequestAddress() Directive {
	return Directive{Kind: DirectiveRequestAddress}
}

func ShowBills(bills []Bill) Directive {
	return Directive{Kind: DirectiveShowBills, Bills: bills}
}

func (d Directive) IsZero() bool {
	return d.Kind == DirectiveNone
}
