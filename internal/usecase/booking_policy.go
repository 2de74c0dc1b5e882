package usecase

import (
	"fmt"
	"math"
	"time"

	"travel-booking/internal/data/entity"
)

// HotelCapacity is the fixed room count assumed for every hotel
const HotelCapacity = 20

const (
	taxRate        = 0.12
	serviceFeeRate = 0.05

	userFullRefundHours    = 48
	userPendingRefundHours = 24
	vendorFullRefundDays   = 2

	stayDateLayout = "2006-01-02"

	defaultUserCancelReason   = "Cancelled by user"
	defaultVendorCancelReason = "Cancelled by vendor"
)

// CalculateNights counts partial days as a full night
func CalculateNights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// CalculatePricing keeps taxes and fee at their exact share of the room total.
// Amount columns carry four decimals so the breakdown survives storage.
func CalculatePricing(pricePerRoom float64, rooms, nights int, discount float64) entity.Pricing {
	roomTotal := pricePerRoom * float64(rooms) * float64(nights)
	taxes := roomTotal * taxRate
	fee := roomTotal * serviceFeeRate

	return entity.Pricing{
		RoomTotal:   roomTotal,
		Taxes:       taxes,
		ServiceFee:  fee,
		Discount:    discount,
		TotalAmount: roomTotal + taxes + fee - discount,
	}
}

type refundDecision struct {
	status        entity.RefundStatus
	refundPayment bool
}

// userRefundPolicy decides on hours until check-in
func userRefundPolicy(hoursUntilCheckIn float64) refundDecision {
	switch {
	case hoursUntilCheckIn >= userFullRefundHours:
		return refundDecision{status: entity.RefundStatusProcessed, refundPayment: true}
	case hoursUntilCheckIn >= userPendingRefundHours:
		return refundDecision{status: entity.RefundStatusPending}
	default:
		return refundDecision{status: entity.RefundStatusRejected}
	}
}

// vendorRefundPolicy decides on whole days until check-in, rounded up.
// A vendor cancellation is never rejected.
func vendorRefundPolicy(hoursUntilCheckIn float64) refundDecision {
	days := math.Ceil(hoursUntilCheckIn / 24)
	if days >= vendorFullRefundDays {
		return refundDecision{status: entity.RefundStatusProcessed, refundPayment: true}
	}
	return refundDecision{status: entity.RefundStatusPending}
}

// parseStayDate accepts a calendar date or a full RFC3339 timestamp
func parseStayDate(value string) (time.Time, error) {
	if t, err := time.Parse(stayDateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD or RFC3339", ErrValidation, value)
	}
	return t.UTC(), nil
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
