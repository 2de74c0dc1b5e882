package events

import (
	"context"

	"go.uber.org/zap"
)

// AuditLogger returns a Handler that writes one structured log line per event
func AuditLogger(log *zap.Logger) Handler {
	log = log.With(zap.String("component", "booking_audit"))
	return func(_ context.Context, event BookingEvent) error {
		fields := []zap.Field{
			zap.String("type", string(event.Type)),
			zap.String("booking_id", event.BookingID),
			zap.String("booking_reference", event.BookingReference),
			zap.String("hotel_id", event.HotelID),
			zap.String("user_id", event.UserID),
			zap.String("vendor_id", event.VendorID),
			zap.String("status", event.Status),
			zap.String("payment_status", event.PaymentStatus),
			zap.Float64("total_amount", event.TotalAmount),
			zap.String("actor", event.Actor),
			zap.Time("occurred_at", event.OccurredAt),
		}
		if event.PreviousStatus != "" {
			fields = append(fields, zap.String("previous_status", event.PreviousStatus))
		}
		if event.RefundStatus != "" {
			fields = append(fields, zap.String("refund_status", event.RefundStatus))
		}

		log.Info("Booking event", fields...)
		return nil
	}
}
