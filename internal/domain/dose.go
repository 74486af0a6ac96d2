package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Substance string

const (
	SubstancePsilocybin Substance = "psilocybin"
	SubstanceLSD        Substance = "lsd"
	SubstanceAmanita    Substance = "amanita"
	SubstanceKetamine   Substance = "ketamine"
)

type IntakeForm string

const (
	FormDriedMushrooms IntakeForm = "dried_mushrooms"
	FormFreshMushrooms IntakeForm = "fresh_mushrooms"
	FormTruffles       IntakeForm = "truffles"
	FormPureExtract    IntakeForm = "pure_extract"
	FormBlotter        IntakeForm = "blotter"
	FormLiquid         IntakeForm = "liquid"
	FormCapsules       IntakeForm = "capsules"
	FormLiquidKetamine IntakeForm = "liquid_ketamine"
)

type DoseGoal string

const (
	GoalSubPerceptual  DoseGoal = "sub_perceptual"
	GoalStandard       DoseGoal = "standard"
	GoalUpperMicrodose DoseGoal = "upper_microdose"
)

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceExperienced  Experience = "experienced"
)

// DoseUnit distingue las dos escalas de dosificación soportadas.
type DoseUnit string

const (
	UnitMicrogram DoseUnit = "µg"
	UnitMilligram DoseUnit = "mg"
)

// DoseParameters es la entrada inmutable del cálculo de dosis.
// Gender es informativo: no participa en la fórmula.
type DoseParameters struct {
	Gender            Gender     `json:"gender"`
	WeightKg          float64    `json:"weight_kg"`
	Substance         Substance  `json:"substance"`
	IntakeForm        IntakeForm `json:"intake_form"`
	Sensitivity       float64    `json:"sensitivity"`
	Goal              DoseGoal   `json:"goal"`
	Experience        Experience `json:"experience,omitempty"`
	CurrentMedication string     `json:"current_medication,omitempty"`
}

// SubstanceProfile define la dosis base de referencia (persona de 70 kg,
// sensibilidad/objetivo/forma estándar) y la unidad de la sustancia.
type SubstanceProfile struct {
	BaseDose float64  `json:"base_dose"`
	Unit     DoseUnit `json:"unit"`
}

// DoseResult es la salida del cálculo más los campos de persistencia
// que completa la capa de servicio.
type DoseResult struct {
	ID                string     `json:"id,omitempty"`
	UserID            string     `json:"user_id,omitempty"`
	Substance         Substance  `json:"substance"`
	IntakeForm        IntakeForm `json:"intake_form"`
	Goal              DoseGoal   `json:"goal"`
	CalculatedDose    float64    `json:"calculated_dose"`
	DoseUnit          DoseUnit   `json:"dose_unit"`
	BaseDose          float64    `json:"base_dose"`
	WeightFactor      float64    `json:"weight_factor"`
	SensitivityFactor float64    `json:"sensitivity_factor"`
	GoalFactor        float64    `json:"goal_factor"`
	IntakeFormFactor  float64    `json:"intake_form_factor"`
	Explanation       string     `json:"explanation"`
	Recommendations   []string   `json:"recommendations"`
	CreatedAt         time.Time  `json:"created_at,omitempty"`
}

// DoseRef es el triple mínimo que el generador de calendario estampa
// en los días de dosis.
type DoseRef struct {
	Substance Substance `json:"substance"`
	Dose      float64   `json:"dose"`
	Unit      DoseUnit  `json:"unit"`
}

// ValidationResult acumula todas las violaciones de dominio de una entrada.
type ValidationResult struct {
	Errors  []string `json:"errors"`
	IsValid bool     `json:"is_valid"`
}
