package service

import (
	"fmt"

	"microdose-api/internal/domain"
)

// Rangos de dominio de los parámetros de dosis.
const (
	minWeightKg    = 30.0
	maxWeightKg    = 200.0
	minSensitivity = 0.3
	maxSensitivity = 2.0
)

var validGenders = map[domain.Gender]bool{
	domain.GenderMale:   true,
	domain.GenderFemale: true,
	domain.GenderOther:  true,
}

var validIntakeForms = map[domain.IntakeForm]bool{
	domain.FormDriedMushrooms: true,
	domain.FormFreshMushrooms: true,
	domain.FormTruffles:       true,
	domain.FormPureExtract:    true,
	domain.FormBlotter:        true,
	domain.FormLiquid:         true,
	domain.FormCapsules:       true,
	domain.FormLiquidKetamine: true,
}

var validExperiences = map[domain.Experience]bool{
	domain.ExperienceBeginner:     true,
	domain.ExperienceIntermediate: true,
	domain.ExperienceExperienced:  true,
}

// ValidateDoseParameters revisa cada campo contra su dominio declarado.
// Cada restricción se evalúa de forma independiente (sin cortocircuito)
// para reportar todas las violaciones en una sola pasada. No muta la entrada.
func ValidateDoseParameters(params domain.DoseParameters) domain.ValidationResult {
	var errs []string

	if !validGenders[params.Gender] {
		errs = append(errs, fmt.Sprintf("género inválido %q: debe ser male, female u other", params.Gender))
	}
	if params.WeightKg < minWeightKg || params.WeightKg > maxWeightKg {
		errs = append(errs, fmt.Sprintf("peso fuera de rango: %g kg (permitido %g-%g kg)", params.WeightKg, minWeightKg, maxWeightKg))
	}
	if _, ok := substanceProfiles[params.Substance]; !ok {
		errs = append(errs, fmt.Sprintf("sustancia desconocida %q", params.Substance))
	}
	if !validIntakeForms[params.IntakeForm] {
		errs = append(errs, fmt.Sprintf("forma de ingesta desconocida %q", params.IntakeForm))
	}
	if params.Sensitivity < minSensitivity || params.Sensitivity > maxSensitivity {
		errs = append(errs, fmt.Sprintf("sensibilidad fuera de rango: %g (permitido %g-%g)", params.Sensitivity, minSensitivity, maxSensitivity))
	}
	if _, ok := goalFactors[params.Goal]; !ok {
		errs = append(errs, fmt.Sprintf("objetivo inválido %q: debe ser sub_perceptual, standard o upper_microdose", params.Goal))
	}
	if params.Experience != "" && !validExperiences[params.Experience] {
		errs = append(errs, fmt.Sprintf("nivel de experiencia inválido %q", params.Experience))
	}

	return domain.ValidationResult{Errors: errs, IsValid: len(errs) == 0}
}
