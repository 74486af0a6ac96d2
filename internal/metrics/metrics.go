// Package metrics publica contadores Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DoseCalculations cuenta cálculos de dosis completados, por sustancia.
	DoseCalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microdose_dose_calculations_total",
		Help: "Cálculos de dosis completados, por sustancia.",
	}, []string{"substance"})

	// ProtocolsCreated cuenta protocolos creados, por tipo.
	ProtocolsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microdose_protocols_created_total",
		Help: "Protocolos creados, por tipo.",
	}, []string{"protocol_type"})

	// ProtocolEventsGenerated cuenta eventos de calendario generados, por tipo
	// de protocolo y de evento.
	ProtocolEventsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microdose_protocol_events_generated_total",
		Help: "Eventos de calendario generados, por tipo de protocolo y de evento.",
	}, []string{"protocol_type", "event_type"})

	// ValidationFailures cuenta entradas rechazadas por validación de dominio.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microdose_validation_failures_total",
		Help: "Entradas rechazadas por validación de dominio, por recurso.",
	}, []string{"resource"})
)

// Handler expone el registro por defecto en formato Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
