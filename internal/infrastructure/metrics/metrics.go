package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics contains all metrics of the payment engine
type PaymentMetrics struct {
	PaymentsCreatedTotal       prometheus.CounterVec
	PaymentsCreatedAmountTotal prometheus.CounterVec
	PaymentsPendingCount       prometheus.GaugeVec

	PaymentsPaidTotal       prometheus.CounterVec
	PaymentsPaidAmountTotal prometheus.CounterVec

	PaymentsExpiredTotal prometheus.CounterVec

	TransactionsConfirmedTotal prometheus.CounterVec
	TransactionsFailedTotal    prometheus.CounterVec

	QuoteSourceTotal prometheus.CounterVec

	QRRegeneratedTotal prometheus.CounterVec

	ConfirmDuration prometheus.HistogramVec

	PaymentErrorsTotal prometheus.CounterVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Total number of payment sessions created",
			},
			[]string{"merchant_id", "currency"},
		),

		PaymentsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_amount_total",
				Help: "Total fiat amount of created payment sessions",
			},
			[]string{"merchant_id", "currency"},
		),

		PaymentsPendingCount: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "payments_pending_count",
				Help: "Current number of open payment sessions (PENDING)",
			},
			[]string{"merchant_id"},
		),

		PaymentsPaidTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_paid_total",
				Help: "Total number of payments confirmed as PAID",
			},
			[]string{"merchant_id", "currency"},
		),

		PaymentsPaidAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_paid_amount_total",
				Help: "Total fiat amount of PAID payments",
			},
			[]string{"merchant_id", "currency"},
		),

		PaymentsExpiredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_expired_total",
				Help: "Total number of payment sessions expired past their TTL",
			},
			[]string{"merchant_id"},
		),

		TransactionsConfirmedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_confirmed_total",
				Help: "Total number of CONFIRMED transactions",
			},
			[]string{"merchant_id", "quote_source"},
		),

		TransactionsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_failed_total",
				Help: "Total number of FAILED transactions (rejected settlement proofs)",
			},
			[]string{"merchant_id", "reason"},
		),

		QuoteSourceTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oracle_quote_source_total",
				Help: "Quotes served per source (LIVE/CACHED/FALLBACK)",
			},
			[]string{"source"},
		),

		QRRegeneratedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qr_regenerated_total",
				Help: "Total number of QR payload regenerations",
			},
			[]string{"merchant_id"},
		),

		ConfirmDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_confirm_duration_seconds",
				Help:    "Confirmation processing time in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms, 20ms, 40ms...
			},
			[]string{"merchant_id", "status"},
		),

		PaymentErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_errors_total",
				Help: "Total number of errors while creating/processing payments",
			},
			[]string{"merchant_id", "error_type"},
		),
	}
}

// RecordPaymentCreated записывает созданную сессию оплаты
func (m *PaymentMetrics) RecordPaymentCreated(merchantID, currency string, amountFiat float64) {
	m.PaymentsCreatedTotal.WithLabelValues(merchantID, currency).Inc()
	m.PaymentsCreatedAmountTotal.WithLabelValues(merchantID, currency).Add(amountFiat)
	m.PaymentsPendingCount.WithLabelValues(merchantID).Inc()
}

// RecordPaymentPaid записывает подтверждённую оплату
func (m *PaymentMetrics) RecordPaymentPaid(merchantID, currency, quoteSource string, amountFiat float64) {
	m.PaymentsPaidTotal.WithLabelValues(merchantID, currency).Inc()
	m.PaymentsPaidAmountTotal.WithLabelValues(merchantID, currency).Add(amountFiat)
	m.TransactionsConfirmedTotal.WithLabelValues(merchantID, quoteSource).Inc()
	m.PaymentsPendingCount.WithLabelValues(merchantID).Dec()
}

func (m *PaymentMetrics) RecordPaymentExpired(merchantID string) {
	m.PaymentsExpiredTotal.WithLabelValues(merchantID).Inc()
	m.PaymentsPendingCount.WithLabelValues(merchantID).Dec()
}

func (m *PaymentMetrics) RecordTransactionFailed(merchantID, reason string) {
	m.TransactionsFailedTotal.WithLabelValues(merchantID, reason).Inc()
}

func (m *PaymentMetrics) RecordQuoteSource(source string) {
	m.QuoteSourceTotal.WithLabelValues(source).Inc()
}

func (m *PaymentMetrics) RecordQRRegenerated(merchantID string) {
	m.QRRegeneratedTotal.WithLabelValues(merchantID).Inc()
}

func (m *PaymentMetrics) RecordConfirmDuration(merchantID, finalStatus string, durationSeconds float64) {
	m.ConfirmDuration.WithLabelValues(merchantID, finalStatus).Observe(durationSeconds)
}

func (m *PaymentMetrics) RecordError(merchantID, errorType string) {
	m.PaymentErrorsTotal.WithLabelValues(merchantID, errorType).Inc()
}
