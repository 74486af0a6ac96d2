package service

import (
	"strings"

	"microdose-api/internal/domain"
)

// Listas de recomendaciones. El orden de salida es determinista:
// base, luego sustancia, luego bloques condicionales en orden de declaración.

var baseRecommendations = []string{
	"Comienza con la dosis más baja y ajusta solo tras varias tomas.",
	"No combines con alcohol ni con otras sustancias psicoactivas.",
	"No conduzcas ni operes maquinaria hasta conocer tu respuesta.",
	"Registra cada toma y sus efectos en tu diario.",
}

var substanceRecommendations = map[domain.Substance][]string{
	domain.SubstancePsilocybin: {
		"Toma la dosis en ayunas o con comida ligera para absorción estable.",
		"La potencia varía entre lotes de hongos: pesa siempre con balanza de precisión.",
	},
	domain.SubstanceLSD: {
		"Usa dosificación volumétrica: los cortes de blotter no son uniformes.",
		"Evita tomarla después del mediodía, puede interferir con el sueño.",
	},
	domain.SubstanceAmanita: {
		"Usa solo material correctamente decarboxilado (muscimol, no ácido iboténico).",
		"Suspende de inmediato ante náuseas o sudoración inusual.",
	},
	domain.SubstanceKetamine: {
		"No repitas tomas el mismo día: la tolerancia se acumula rápido.",
		"El uso frecuente afecta vías urinarias; respeta los días de pausa.",
	},
}

var beginnerRecommendations = []string{
	"Como principiante, reduce la primera toma a la mitad de lo calculado.",
	"Elige un día sin obligaciones para tu primera experiencia.",
}

var medicationRecommendations = []string{
	"Estás tomando medicación: consulta con tu médico posibles interacciones antes de empezar.",
}

// buildRecommendations devuelve la lista ordenada de avisos de seguridad
// para los parámetros dados.
func buildRecommendations(params domain.DoseParameters) []string {
	out := make([]string, 0, len(baseRecommendations)+4)
	out = append(out, baseRecommendations...)
	out = append(out, substanceRecommendations[params.Substance]...)
	if params.Experience == domain.ExperienceBeginner {
		out = append(out, beginnerRecommendations...)
	}
	if strings.TrimSpace(params.CurrentMedication) != "" {
		out = append(out, medicationRecommendations...)
	}
	return out
}
