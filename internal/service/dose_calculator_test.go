package service

import (
	"math"
	"strings"
	"testing"

	"microdose-api/internal/domain"
)

func baseParams() domain.DoseParameters {
	return domain.DoseParameters{
		Gender:      domain.GenderOther,
		WeightKg:    70,
		Substance:   domain.SubstancePsilocybin,
		IntakeForm:  domain.FormDriedMushrooms,
		Sensitivity: 1.0,
		Goal:        domain.GoalStandard,
	}
}

func TestCalculateDose_PsilocybinReference(t *testing.T) {
	res := CalculateDose(baseParams())

	if res.CalculatedDose != 200 {
		t.Fatalf("expected 200 mg, got %g", res.CalculatedDose)
	}
	if res.DoseUnit != domain.UnitMilligram {
		t.Fatalf("expected mg, got %q", res.DoseUnit)
	}
	if res.BaseDose != 200 || res.WeightFactor != 1.0 || res.SensitivityFactor != 1.0 || res.GoalFactor != 1.0 || res.IntakeFormFactor != 1.0 {
		t.Fatalf("unexpected factors: %+v", res)
	}
}

func TestCalculateDose_LSDSubPerceptual(t *testing.T) {
	params := domain.DoseParameters{
		Gender:      domain.GenderFemale,
		WeightKg:    35,
		Substance:   domain.SubstanceLSD,
		IntakeForm:  domain.FormBlotter,
		Sensitivity: 1.0,
		Goal:        domain.GoalSubPerceptual,
	}
	res := CalculateDose(params)

	// 10µg × 0.5 (peso) × 1.0 × 0.5 (objetivo) × 1.0 = 2.5µg
	if res.CalculatedDose != 2.5 {
		t.Fatalf("expected 2.5 µg, got %g", res.CalculatedDose)
	}
	if res.DoseUnit != domain.UnitMicrogram {
		t.Fatalf("expected µg, got %q", res.DoseUnit)
	}
}

func TestCalculateDose_WeightScalesLinearly(t *testing.T) {
	p1 := baseParams()
	p1.WeightKg = 35
	p2 := baseParams()
	p2.WeightKg = 70

	d1 := CalculateDose(p1).CalculatedDose
	d2 := CalculateDose(p2).CalculatedDose
	if d2 != 2*d1 {
		t.Fatalf("expected dose to double with weight: %g vs %g", d1, d2)
	}
}

func TestCalculateDose_GoalOrdering(t *testing.T) {
	doses := make(map[domain.DoseGoal]float64)
	for _, goal := range []domain.DoseGoal{domain.GoalSubPerceptual, domain.GoalStandard, domain.GoalUpperMicrodose} {
		p := baseParams()
		p.Goal = goal
		doses[goal] = CalculateDose(p).CalculatedDose
	}

	if !(doses[domain.GoalSubPerceptual] < doses[domain.GoalStandard] && doses[domain.GoalStandard] < doses[domain.GoalUpperMicrodose]) {
		t.Fatalf("expected strictly increasing doses per goal, got %v", doses)
	}
}

func TestCalculateDose_RoundingPrecision(t *testing.T) {
	// µg: un decimal. 10 × (33/70) ≈ 4.714... → 4.7
	lsd := domain.DoseParameters{
		Gender:      domain.GenderMale,
		WeightKg:    33,
		Substance:   domain.SubstanceLSD,
		IntakeForm:  domain.FormBlotter,
		Sensitivity: 1.0,
		Goal:        domain.GoalStandard,
	}
	if got := CalculateDose(lsd).CalculatedDose; got != 4.7 {
		t.Fatalf("expected 4.7, got %g", got)
	}

	// mg: entero. 200 × (71/70) ≈ 202.857... → 203
	psi := baseParams()
	psi.WeightKg = 71
	got := CalculateDose(psi).CalculatedDose
	if got != 203 {
		t.Fatalf("expected 203, got %g", got)
	}
	if got != math.Trunc(got) {
		t.Fatalf("mg dose must be integer, got %g", got)
	}
}

func TestCalculateDose_UnknownFormNeutralFactor(t *testing.T) {
	// blotter no está mapeado para psilocibina: factor neutro 1.0, sin error.
	// Comportamiento heredado que este test fija deliberadamente.
	p := baseParams()
	p.IntakeForm = domain.FormBlotter

	res := CalculateDose(p)
	if res.IntakeFormFactor != 1.0 {
		t.Fatalf("expected neutral factor 1.0, got %g", res.IntakeFormFactor)
	}
	if res.CalculatedDose != 200 {
		t.Fatalf("expected 200 mg with neutral factor, got %g", res.CalculatedDose)
	}
}

func TestCalculateDose_NonNegativeAcrossValidInputs(t *testing.T) {
	for _, substance := range []domain.Substance{domain.SubstancePsilocybin, domain.SubstanceLSD, domain.SubstanceAmanita, domain.SubstanceKetamine} {
		for _, weight := range []float64{30, 70, 200} {
			for _, sens := range []float64{0.3, 1.0, 2.0} {
				p := baseParams()
				p.Substance = substance
				p.WeightKg = weight
				p.Sensitivity = sens
				if got := CalculateDose(p).CalculatedDose; got < 0 {
					t.Fatalf("negative dose for %s weight=%g sens=%g: %g", substance, weight, sens, got)
				}
			}
		}
	}
}

func TestCalculateDose_ExplanationListsFacts(t *testing.T) {
	p := baseParams()
	p.WeightKg = 80
	res := CalculateDose(p)

	for _, fragment := range []string{"Dosis base", "80 kg", "psilocybin", "Dosis recomendada"} {
		if !strings.Contains(res.Explanation, fragment) {
			t.Fatalf("explanation missing %q: %s", fragment, res.Explanation)
		}
	}
}

func TestRecommendations_DeterministicOrder(t *testing.T) {
	p := baseParams()
	p.Experience = domain.ExperienceBeginner
	p.CurrentMedication = "sertralina"

	recs := CalculateDose(p).Recommendations

	wantLen := len(baseRecommendations) + len(substanceRecommendations[p.Substance]) + len(beginnerRecommendations) + len(medicationRecommendations)
	if len(recs) != wantLen {
		t.Fatalf("expected %d recommendations, got %d", wantLen, len(recs))
	}

	// base primero, luego sustancia, luego bloques condicionales en orden.
	idx := 0
	for _, want := range baseRecommendations {
		if recs[idx] != want {
			t.Fatalf("position %d: expected base recommendation %q, got %q", idx, want, recs[idx])
		}
		idx++
	}
	for _, want := range substanceRecommendations[p.Substance] {
		if recs[idx] != want {
			t.Fatalf("position %d: expected substance recommendation %q, got %q", idx, want, recs[idx])
		}
		idx++
	}
	for _, want := range beginnerRecommendations {
		if recs[idx] != want {
			t.Fatalf("position %d: expected beginner recommendation %q, got %q", idx, want, recs[idx])
		}
		idx++
	}
	if recs[idx] != medicationRecommendations[0] {
		t.Fatalf("expected medication recommendation last, got %q", recs[idx])
	}
}

func TestRecommendations_ConditionalBlocksAbsent(t *testing.T) {
	recs := CalculateDose(baseParams()).Recommendations
	wantLen := len(baseRecommendations) + len(substanceRecommendations[domain.SubstancePsilocybin])
	if len(recs) != wantLen {
		t.Fatalf("expected %d recommendations without conditionals, got %d", wantLen, len(recs))
	}
}
