package billing

import (
	"github.com/meditrack/meditrack/internal/httperr"
)

// Category identifies the kind of consultation being billed. The policy
// table below is the single place new categories get added; calling code
// never branches on the category itself.
type Category string

const (
	CategoryConsultation Category = "CONSULTATION"
	CategoryFollowUp     Category = "FOLLOW_UP"
	CategoryLabTest      Category = "LAB_TEST"
)

type policy struct {
	label string
	// taxRate applies to the base amount; adjustment is a flat surcharge
	// (positive) or discount (negative) added after tax.
	taxRate    float64
	adjustment float64
}

var policies = map[Category]policy{
	CategoryConsultation: {label: "Consultation Bill", taxRate: 0.18, adjustment: 0},
	CategoryFollowUp:     {label: "Follow-up Bill", taxRate: 0.10, adjustment: -100},
	CategoryLabTest:      {label: "Lab Test Bill", taxRate: 0.15, adjustment: 200},
}

// Register adds or replaces a category policy. Intended for wiring new
// bill kinds at startup, not for runtime mutation.
func Register(cat Category, label string, taxRate, adjustment float64) {
	policies[cat] = policy{label: label, taxRate: taxRate, adjustment: adjustment}
}

// Bill is the computed charge for one confirmation. Base and tax stay
// unrounded so the audit snapshot records exactly what was computed.
type Bill struct {
	Category    Category
	Label       string
	BaseAmount  float64
	TaxRate     float64
	TaxAmount   float64
	Adjustment  float64
	FinalAmount float64
}

// Compute prices a base amount under the category's policy:
//
//	final = base + base*taxRate + adjustment
//
// Pure and deterministic; unknown categories are a caller error.
func Compute(cat Category, baseAmount float64) (Bill, error) {
	p, ok := policies[cat]
	if !ok {
		return Bill{}, httperr.ErrBusiness(
			httperr.CodeInvalidBillType,
			"Unknown bill type: "+string(cat),
		)
	}

	tax := baseAmount * p.taxRate
	return Bill{
		Category:    cat,
		Label:       p.label,
		BaseAmount:  baseAmount,
		TaxRate:     p.taxRate,
		TaxAmount:   tax,
		Adjustment:  p.adjustment,
		FinalAmount: baseAmount + tax + p.adjustment,
	}, nil
}
