// Package metrics collects and exposes Prometheus metrics for the booking
// lifecycle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts booking lifecycle transitions.
type Collector struct {
	created   prometheus.Counter
	confirmed prometheus.Counter
	deleted   prometheus.Counter
	expired   prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinemabooking_bookings_created_total",
			Help: "Total number of bookings created.",
		}),
		confirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinemabooking_bookings_confirmed_total",
			Help: "Total number of bookings confirmed.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinemabooking_bookings_deleted_total",
			Help: "Total number of pending bookings deleted.",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cinemabooking_bookings_expired_total",
			Help: "Total number of bookings expired by the sweep.",
		}),
	}

	reg.MustRegister(c.created, c.confirmed, c.deleted, c.expired)
	return c
}

func (c *Collector) RecordBookingCreated()   { c.created.Inc() }
func (c *Collector) RecordBookingConfirmed() { c.confirmed.Inc() }
func (c *Collector) RecordBookingDeleted()   { c.deleted.Inc() }

func (c *Collector) RecordBookingsExpired(count int) {
	c.expired.Add(float64(count))
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
