package billing

import (
	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/enum"
)

// Scheme is the percentage configuration of a compensation scheme.
type Scheme struct {
	PercentageType    enum.PercentageType
	ProjectPercent    float64
	DirectWorkPercent float64
}

// Override includes or excludes one scope (invoice, project or client) from
// percentage compensation, optionally substituting custom percentages or a
// fixed amount. Exactly one scope ID is set.
type Override struct {
	InvoiceID  *uuid.UUID
	ProjectID  *uuid.UUID
	ClientID   *uuid.UUID
	IsEligible bool

	ProjectPercent    *float64
	DirectWorkPercent *float64
	FixedAmount       *float64
}

// BillLine is one line of a paid invoice, as far as compensation cares.
type BillLine struct {
	Type     enum.ItemType
	PersonID *uuid.UUID
	Amount   float64
}

// Bill is a period invoice attached to a project.
type Bill struct {
	ID     uuid.UUID
	Amount float64
	Paid   bool
	Lines  []BillLine
}

// TimesheetEntry is a logged unit of the user's direct work.
type TimesheetEntry struct {
	Hours float64
	Rate  float64
}

// ProjectActivity bundles one candidate project with the user's timesheets
// and the project's bills restricted to the period under calculation.
type ProjectActivity struct {
	ProjectID  uuid.UUID
	ClientID   uuid.UUID
	Bills      []Bill
	Timesheets []TimesheetEntry
}

// Earnings is the aggregated result.
type Earnings struct {
	ProjectTotalEarnings float64 `json:"project_total_earnings"`
	DirectWorkEarnings   float64 `json:"direct_work_earnings"`
	TotalEarned          float64 `json:"total_earned"`
}

// EligibilityIndex resolves overrides with bill > project > client > default
// eligible precedence.
type EligibilityIndex struct {
	byInvoice map[uuid.UUID]Override
	byProject map[uuid.UUID]Override
	byClient  map[uuid.UUID]Override
}

// NewEligibilityIndex builds the three precedence-ordered lookup maps.
func NewEligibilityIndex(overrides []Override) *EligibilityIndex {
	ix := &EligibilityIndex{
		byInvoice: make(map[uuid.UUID]Override),
		byProject: make(map[uuid.UUID]Override),
		byClient:  make(map[uuid.UUID]Override),
	}
	for _, ov := range overrides {
		switch {
		case ov.InvoiceID != nil:
			ix.byInvoice[*ov.InvoiceID] = ov
		case ov.ProjectID != nil:
			ix.byProject[*ov.ProjectID] = ov
		case ov.ClientID != nil:
			ix.byClient[*ov.ClientID] = ov
		}
	}
	return ix
}

// ForBill resolves the override governing a single bill.
func (ix *EligibilityIndex) ForBill(billID, projectID, clientID uuid.UUID) (Override, bool) {
	if ov, ok := ix.byInvoice[billID]; ok {
		return ov, true
	}
	return ix.ForProject(projectID, clientID)
}

// ForProject resolves the override governing a project (project record wins
// over the project's client record).
func (ix *EligibilityIndex) ForProject(projectID, clientID uuid.UUID) (Override, bool) {
	if ov, ok := ix.byProject[projectID]; ok {
		return ov, true
	}
	if ov, ok := ix.byClient[clientID]; ok {
		return ov, true
	}
	return Override{}, false
}

// CalculateEarnings walks the user's period activity and sums project-total
// and direct-work earnings under the scheme, honoring eligibility overrides.
// Expense line items never count toward either accumulator.
func CalculateEarnings(userID uuid.UUID, scheme Scheme, projects []ProjectActivity, overrides []Override) Earnings {
	ix := NewEligibilityIndex(overrides)

	var e Earnings
	for _, p := range projects {
		pov, hasProjOv := ix.ForProject(p.ProjectID, p.ClientID)
		if hasProjOv && !pov.IsEligible {
			continue
		}

		projPct := scheme.ProjectPercent
		dwPct := scheme.DirectWorkPercent
		var projFixed *float64
		if hasProjOv {
			if pov.ProjectPercent != nil {
				projPct = *pov.ProjectPercent
			}
			if pov.DirectWorkPercent != nil {
				dwPct = *pov.DirectWorkPercent
			}
			projFixed = pov.FixedAmount
		}

		var directWork float64
		for _, ts := range p.Timesheets {
			directWork += ts.Hours * ts.Rate
		}

		// plainTotal collects eligible paid bills that have no bill-level
		// override and therefore earn the project-scope percentage (or the
		// project-scope fixed amount, once, when one is set).
		var plainTotal, overriddenEarn float64
		plainBills := false
		for _, b := range p.Bills {
			if !b.Paid {
				continue
			}
			bov, hasBillOv := ix.byInvoice[b.ID]
			if hasBillOv && !bov.IsEligible {
				continue
			}

			switch {
			case hasBillOv && bov.FixedAmount != nil:
				overriddenEarn += *bov.FixedAmount
			case hasBillOv && bov.ProjectPercent != nil:
				overriddenEarn += b.Amount * *bov.ProjectPercent / 100
			default:
				plainTotal += b.Amount
				plainBills = true
			}

			for _, ln := range b.Lines {
				if ln.Type == enum.ItemTypeExpense {
					continue
				}
				if ln.PersonID != nil && *ln.PersonID == userID {
					directWork += ln.Amount
				}
			}
		}

		if scheme.PercentageType.IncludesProjectTotal() {
			plainEarn := plainTotal * projPct / 100
			if projFixed != nil && plainBills {
				plainEarn = *projFixed
			}
			e.ProjectTotalEarnings += plainEarn + overriddenEarn
		}
		if scheme.PercentageType.IncludesDirectWork() {
			e.DirectWorkEarnings += directWork * dwPct / 100
		}
	}

	e.TotalEarned = e.ProjectTotalEarnings + e.DirectWorkEarnings
	return e
}
