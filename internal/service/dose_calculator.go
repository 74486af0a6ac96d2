package service

import (
	"fmt"
	"math"
	"strconv"

	"microdose-api/internal/domain"
)

// referenceWeightKg es el peso de referencia de todas las dosis base.
const referenceWeightKg = 70.0

// substanceProfiles define la dosis base por sustancia para una persona de
// 70 kg con sensibilidad, objetivo y forma de ingesta estándar.
// Tabla de solo lectura: nunca se muta en runtime.
var substanceProfiles = map[domain.Substance]domain.SubstanceProfile{
	domain.SubstancePsilocybin: {BaseDose: 200, Unit: domain.UnitMilligram},
	domain.SubstanceLSD:        {BaseDose: 10, Unit: domain.UnitMicrogram},
	domain.SubstanceAmanita:    {BaseDose: 1000, Unit: domain.UnitMilligram},
	domain.SubstanceKetamine:   {BaseDose: 10, Unit: domain.UnitMilligram},
}

// goalFactors escala la dosis según el objetivo. Estrictamente creciente.
var goalFactors = map[domain.DoseGoal]float64{
	domain.GoalSubPerceptual:  0.5,
	domain.GoalStandard:       1.0,
	domain.GoalUpperMicrodose: 1.5,
}

// intakeFormFactors ajusta por forma de ingesta, por sustancia. Una forma sin
// entrada para la sustancia usa factor neutro 1.0 (comportamiento heredado,
// fijado por test).
var intakeFormFactors = map[domain.Substance]map[domain.IntakeForm]float64{
	domain.SubstancePsilocybin: {
		domain.FormDriedMushrooms: 1.0,
		domain.FormFreshMushrooms: 10.0, // ~90% agua: misma dosis efectiva pesa 10x
		domain.FormTruffles:       2.0,
		domain.FormPureExtract:    0.01, // psilocibina pura, ~1% del peso seco
		domain.FormCapsules:       1.0,
	},
	domain.SubstanceLSD: {
		domain.FormBlotter: 1.0,
		domain.FormLiquid:  1.0,
	},
	domain.SubstanceAmanita: {
		domain.FormDriedMushrooms: 1.0,
		domain.FormCapsules:       1.0,
	},
	domain.SubstanceKetamine: {
		domain.FormLiquidKetamine: 1.0,
		domain.FormCapsules:       1.3, // menor biodisponibilidad oral
	},
}

// CalculateDose computa la dosis recomendada a partir de parámetros ya
// validados. Es una función pura: no valida, no falla y no muta la entrada.
// Con entrada fuera de rango produce un número sin sentido, no un error;
// la validación es responsabilidad del llamador (ValidateDoseParameters).
func CalculateDose(params domain.DoseParameters) domain.DoseResult {
	profile := substanceProfiles[params.Substance]

	weightFactor := params.WeightKg / referenceWeightKg
	sensitivityFactor := params.Sensitivity
	goalFactor := goalFactors[params.Goal]

	formFactor := 1.0
	if forms, ok := intakeFormFactors[params.Substance]; ok {
		if f, ok := forms[params.IntakeForm]; ok {
			formFactor = f
		}
	}

	raw := profile.BaseDose * weightFactor * sensitivityFactor * goalFactor * formFactor
	dose := roundDose(raw, profile.Unit)

	return domain.DoseResult{
		Substance:         params.Substance,
		IntakeForm:        params.IntakeForm,
		Goal:              params.Goal,
		CalculatedDose:    dose,
		DoseUnit:          profile.Unit,
		BaseDose:          profile.BaseDose,
		WeightFactor:      weightFactor,
		SensitivityFactor: sensitivityFactor,
		GoalFactor:        goalFactor,
		IntakeFormFactor:  formFactor,
		Explanation:       buildExplanation(params, profile, weightFactor, goalFactor, formFactor, dose),
		Recommendations:   buildRecommendations(params),
	}
}

// roundDose aplica la precisión realista de cada escala: microgramos a un
// decimal, miligramos a entero. Redondeo half-up.
func roundDose(raw float64, unit domain.DoseUnit) float64 {
	if unit == domain.UnitMicrogram {
		return math.Round(raw*10) / 10
	}
	return math.Round(raw)
}

// FormatDose presenta una dosis con la precisión de su unidad.
func FormatDose(dose float64, unit domain.DoseUnit) string {
	if unit == domain.UnitMicrogram {
		return strconv.FormatFloat(dose, 'f', 1, 64) + " " + string(unit)
	}
	return strconv.FormatFloat(dose, 'f', 0, 64) + " " + string(unit)
}

// buildExplanation arma el desglose legible del cálculo. Es un artefacto de
// presentación: enumera dosis base, peso normalizado, cada factor y el
// resultado final, pero no contiene lógica propia.
func buildExplanation(params domain.DoseParameters, profile domain.SubstanceProfile, weightFactor, goalFactor, formFactor float64, dose float64) string {
	return fmt.Sprintf(
		"Dosis base de %s: %s (referencia: persona de 70 kg). "+
			"Peso %g kg → factor %.2f. Sensibilidad → factor %.2f. "+
			"Objetivo %q → factor %.2f. Forma de ingesta %q → factor %.2f. "+
			"Dosis recomendada: %s.",
		params.Substance,
		FormatDose(profile.BaseDose, profile.Unit),
		params.WeightKg,
		weightFactor,
		params.Sensitivity,
		params.Goal,
		goalFactor,
		params.IntakeForm,
		formFactor,
		FormatDose(dose, profile.Unit),
	)
}
