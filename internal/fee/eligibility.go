package fee

import "time"

func startOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
}

// BookingWindow returns the two instants at which the membership_fee
// property is sampled for a period: the first moment of day
// begins_on+booking_begin-1 and the last moment of day
// begins_on+booking_end-1. A user owes the fee if the property holds at
// either snapshot, so moving in late or out early within the booking
// window still incurs the charge.
func BookingWindow(f *MembershipFee) (begin, end time.Time) {
	begin = startOfDay(f.BeginsOn.AddDate(0, 0, f.BookingBegin-1))
	end = endOfDay(f.BeginsOn.AddDate(0, 0, f.BookingEnd-1))
	return begin, end
}

// PeriodSpan returns the full period as timestamps, first moment of
// begins_on through last moment of ends_on.
func PeriodSpan(f *MembershipFee) (begin, end time.Time) {
	return startOfDay(f.BeginsOn), endOfDay(f.EndsOn)
}

// DestinationAccount picks the fee account a candidate's charge is
// booked against: the building at the period end, else the building at
// the period begin, else the configured default.
func DestinationAccount(c *Candidate, defaultAccountID int64) int64 {
	if c.FeeAccountEnd != nil {
		return *c.FeeAccountEnd
	}
	if c.FeeAccountBegin != nil {
		return *c.FeeAccountBegin
	}
	return defaultAccountID
}
