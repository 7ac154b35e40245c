package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/enum"
)

func ptrF(v float64) *float64      { return &v }
func ptrID(v uuid.UUID) *uuid.UUID { return &v }

func TestCalculateEarningsProjectTotal(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	clientID := uuid.New()

	scheme := Scheme{
		PercentageType: enum.PercentageProjectTotal,
		ProjectPercent: 10,
	}

	projects := []ProjectActivity{{
		ProjectID: projectID,
		ClientID:  clientID,
		Bills: []Bill{
			{ID: uuid.New(), Amount: 1000, Paid: true},
			{ID: uuid.New(), Amount: 500, Paid: true},
			{ID: uuid.New(), Amount: 9999, Paid: false}, // unpaid never counts
		},
	}}

	got := CalculateEarnings(userID, scheme, projects, nil)
	if !almostEqual(got.ProjectTotalEarnings, 150) {
		t.Errorf("ProjectTotalEarnings = %v, want 150", got.ProjectTotalEarnings)
	}
	if got.DirectWorkEarnings != 0 {
		t.Errorf("DirectWorkEarnings = %v, want 0", got.DirectWorkEarnings)
	}
	if !almostEqual(got.TotalEarned, 150) {
		t.Errorf("TotalEarned = %v, want 150", got.TotalEarned)
	}
}

func TestCalculateEarningsDirectWork(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	projectID := uuid.New()
	clientID := uuid.New()

	scheme := Scheme{
		PercentageType:    enum.PercentageDirectWork,
		ProjectPercent:    10, // must not apply
		DirectWorkPercent: 50,
	}

	projects := []ProjectActivity{{
		ProjectID: projectID,
		ClientID:  clientID,
		Timesheets: []TimesheetEntry{
			{Hours: 10, Rate: 20}, // 200
		},
		Bills: []Bill{{
			ID:     uuid.New(),
			Amount: 1000,
			Paid:   true,
			Lines: []BillLine{
				{Type: enum.ItemTypeService, PersonID: ptrID(userID), Amount: 300},
				{Type: enum.ItemTypeService, PersonID: ptrID(otherID), Amount: 400}, // someone else's work
				{Type: enum.ItemTypeExpense, PersonID: ptrID(userID), Amount: 250},  // expenses excluded
			},
		}},
	}}

	got := CalculateEarnings(userID, scheme, projects, nil)
	// direct work base = 200 timesheet + 300 own line = 500; 50% = 250
	if !almostEqual(got.DirectWorkEarnings, 250) {
		t.Errorf("DirectWorkEarnings = %v, want 250", got.DirectWorkEarnings)
	}
	if got.ProjectTotalEarnings != 0 {
		t.Errorf("ProjectTotalEarnings = %v, want 0 (DirectWork scheme)", got.ProjectTotalEarnings)
	}
}

func TestCalculateEarningsBothAccumulators(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	clientID := uuid.New()

	scheme := Scheme{
		PercentageType:    enum.PercentageBoth,
		ProjectPercent:    10,
		DirectWorkPercent: 40,
	}

	projects := []ProjectActivity{{
		ProjectID:  projectID,
		ClientID:   clientID,
		Timesheets: []TimesheetEntry{{Hours: 5, Rate: 100}}, // 500
		Bills:      []Bill{{ID: uuid.New(), Amount: 2000, Paid: true}},
	}}

	got := CalculateEarnings(userID, scheme, projects, nil)
	if !almostEqual(got.ProjectTotalEarnings, 200) {
		t.Errorf("ProjectTotalEarnings = %v, want 200", got.ProjectTotalEarnings)
	}
	if !almostEqual(got.DirectWorkEarnings, 200) {
		t.Errorf("DirectWorkEarnings = %v, want 200", got.DirectWorkEarnings)
	}
	if !almostEqual(got.TotalEarned, 400) {
		t.Errorf("TotalEarned = %v, want 400", got.TotalEarned)
	}
}

func TestEligibilityPrecedence(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	clientID := uuid.New()
	billID := uuid.New()

	scheme := Scheme{PercentageType: enum.PercentageProjectTotal, ProjectPercent: 10}
	projects := []ProjectActivity{{
		ProjectID: projectID,
		ClientID:  clientID,
		Bills:     []Bill{{ID: billID, Amount: 1000, Paid: true}},
	}}

	t.Run("project exclusion beats client inclusion", func(t *testing.T) {
		overrides := []Override{
			{ClientID: ptrID(clientID), IsEligible: true},
			{ProjectID: ptrID(projectID), IsEligible: false},
		}
		got := CalculateEarnings(userID, scheme, projects, overrides)
		if got.TotalEarned != 0 {
			t.Errorf("TotalEarned = %v, want 0 (project-level exclusion wins)", got.TotalEarned)
		}
	})

	t.Run("bill exclusion beats project inclusion", func(t *testing.T) {
		overrides := []Override{
			{ProjectID: ptrID(projectID), IsEligible: true},
			{InvoiceID: ptrID(billID), IsEligible: false},
		}
		got := CalculateEarnings(userID, scheme, projects, overrides)
		if got.TotalEarned != 0 {
			t.Errorf("TotalEarned = %v, want 0 (bill-level exclusion wins)", got.TotalEarned)
		}
	})

	t.Run("client exclusion applies without closer records", func(t *testing.T) {
		overrides := []Override{{ClientID: ptrID(clientID), IsEligible: false}}
		got := CalculateEarnings(userID, scheme, projects, overrides)
		if got.TotalEarned != 0 {
			t.Errorf("TotalEarned = %v, want 0 (client-level exclusion)", got.TotalEarned)
		}
	})

	t.Run("default is eligible", func(t *testing.T) {
		got := CalculateEarnings(userID, scheme, projects, nil)
		if !almostEqual(got.TotalEarned, 100) {
			t.Errorf("TotalEarned = %v, want 100 (default eligible)", got.TotalEarned)
		}
	})
}

func TestEarningsOverrideSubstitutions(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	clientID := uuid.New()
	billID := uuid.New()
	otherBillID := uuid.New()

	scheme := Scheme{PercentageType: enum.PercentageProjectTotal, ProjectPercent: 10}
	projects := []ProjectActivity{{
		ProjectID: projectID,
		ClientID:  clientID,
		Bills: []Bill{
			{ID: billID, Amount: 1000, Paid: true},
			{ID: otherBillID, Amount: 500, Paid: true},
		},
	}}

	t.Run("bill-level percentage override", func(t *testing.T) {
		overrides := []Override{{InvoiceID: ptrID(billID), IsEligible: true, ProjectPercent: ptrF(20)}}
		got := CalculateEarnings(userID, scheme, projects, overrides)
		// 1000 at 20% + 500 at the scheme's 10%
		if !almostEqual(got.TotalEarned, 250) {
			t.Errorf("TotalEarned = %v, want 250", got.TotalEarned)
		}
	})

	t.Run("bill-level fixed amount override", func(t *testing.T) {
		overrides := []Override{{InvoiceID: ptrID(billID), IsEligible: true, FixedAmount: ptrF(75)}}
		got := CalculateEarnings(userID, scheme, projects, overrides)
		// fixed 75 + 500 at 10%
		if !almostEqual(got.TotalEarned, 125) {
			t.Errorf("TotalEarned = %v, want 125", got.TotalEarned)
		}
	})

	t.Run("project-level fixed amount replaces percentage", func(t *testing.T) {
		overrides := []Override{{ProjectID: ptrID(projectID), IsEligible: true, FixedAmount: ptrF(60)}}
		got := CalculateEarnings(userID, scheme, projects, overrides)
		if !almostEqual(got.TotalEarned, 60) {
			t.Errorf("TotalEarned = %v, want 60", got.TotalEarned)
		}
	})
}
