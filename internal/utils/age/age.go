package age

import "time"

// At returns whole years between dob and now, calendar-aware: the year
// difference is decremented while this year's birthday is still ahead.
// Plain year subtraction would overstate age before the birthday.
func At(dob, now time.Time) int {
	years := now.Year() - dob.Year()

	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
