package service

import (
	"testing"
	"time"

	"microdose-api/internal/domain"
)

func TestPlanReminders_OnlyDoseDays(t *testing.T) {
	def := domain.ProtocolDefinition{
		Type:             domain.ProtocolFadiman,
		StartDate:        mondayStart(),
		CycleLengthWeeks: 2,
	}
	events := GenerateSchedule(def, testDose)
	for i := range events {
		events[i].ID = "ev-" + events[i].Date.String()
	}

	reminders, err := PlanReminders("proto-1", events, "08:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// fadiman 2 semanas: días 0,3,6,9,12 → 5 recordatorios
	if len(reminders) != 5 {
		t.Fatalf("expected 5 reminders, got %d", len(reminders))
	}
	first := reminders[0]
	if first.ProtocolID != "proto-1" || first.EventID == "" {
		t.Fatalf("reminder missing references: %+v", first)
	}
	want := time.Date(2025, time.June, 2, 8, 30, 0, 0, time.UTC)
	if !first.At.Equal(want) {
		t.Fatalf("expected %s, got %s", want, first.At)
	}
	if first.Substance != testDose.Substance || first.Dose != testDose.Dose || first.DoseUnit != testDose.Unit {
		t.Fatalf("reminder missing dose data: %+v", first)
	}
}

func TestPlanReminders_DefaultTime(t *testing.T) {
	def := domain.ProtocolDefinition{
		Type:             domain.ProtocolFadiman,
		StartDate:        mondayStart(),
		CycleLengthWeeks: 2,
	}
	events := GenerateSchedule(def, testDose)

	reminders, err := PlanReminders("proto-1", events, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reminders[0].At; got.Hour() != 9 || got.Minute() != 0 {
		t.Fatalf("expected default 09:00, got %s", got)
	}
}

func TestPlanReminders_InvalidTime(t *testing.T) {
	if _, err := PlanReminders("proto-1", nil, "25:99"); err == nil {
		t.Fatalf("expected error for invalid time")
	}
}
