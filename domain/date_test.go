package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_JSON(t *testing.T) {
	spec := LoanSpec{Principal: 1000, TermYears: 1, StartDate: NewDate(2024, time.February, 29)}

	data, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded LoanSpec
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.StartDate.Equal(spec.StartDate.Time) {
		t.Errorf("expected %s, got %s", spec.StartDate, decoded.StartDate)
	}
}

func TestDate_UnmarshalEmptyAndNull(t *testing.T) {
	for _, raw := range []string{`{"start_date": null}`, `{"start_date": ""}`, `{}`} {
		var spec LoanSpec
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			t.Fatalf("%s: unexpected error: %v", raw, err)
		}
		if !spec.StartDate.IsZero() {
			t.Errorf("%s: expected zero date, got %s", raw, spec.StartDate)
		}
	}
}

func TestDate_UnmarshalRejectsOtherLayouts(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"03/15/2024"`), &d); err == nil {
		t.Errorf("expected error for a non ISO date")
	}
}

func TestDateOf_TruncatesToDay(t *testing.T) {
	got := DateOf(time.Date(2026, time.October, 19, 23, 59, 0, 0, time.UTC))
	if got.String() != "2026-10-19" || got.Hour() != 0 {
		t.Errorf("expected midnight 2026-10-19, got %s", got.Time)
	}
}

func TestPrincipalAndInterest(t *testing.T) {
	spec := LoanSpec{MonthlyPayment: 2100, Escrow: 400}
	if got := spec.PrincipalAndInterest(); got != 1700 {
		t.Errorf("expected 1700, got %.2f", got)
	}
}
