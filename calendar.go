package httpdate

const secondsPerDay = 86400

func isLeap(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}

// daysSinceEpoch converts a proleptic Gregorian date to days relative to
// 1970-01-01 using Howard Hinnant's days_from_civil.
func daysSinceEpoch(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := y
	if era < 0 {
		era -= 399
	}
	era /= 400
	yoe := y - era*400 // [0, 399]
	mp := int64(month) + 9
	if month > 2 {
		mp = int64(month) - 3
	}
	doy := (153*mp+2)/5 + int64(day) - 1    // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysSinceEpoch.
func civilFromDays(days int64) (year, month, day int) {
	z := days + 719468
	era := z
	if era < 0 {
		era -= 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	y := yoe + era*400
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

// dayOfWeek returns 0 for Sunday through 6 for Saturday.
func dayOfWeek(year, month, day int) int {
	return weekdayFromDays(daysSinceEpoch(year, month, day))
}

func weekdayFromDays(days int64) int {
	// 1970-01-01 was a Thursday
	wd := (days + 4) % 7
	if wd < 0 {
		wd += 7
	}
	return int(wd)
}

// timestampOf returns seconds since the epoch. A second of 60 rolls into
// the next minute.
func timestampOf(d *PartialDate) int64 {
	return daysSinceEpoch(d.year, d.month, d.day)*secondsPerDay +
		int64(d.hour)*3600 + int64(d.minute)*60 + int64(d.second)
}

// isValidMonthday checks the day against the month alone. February allows
// 29 here; the leap year check needs the year.
func isValidMonthday(month, day int) bool {
	if day < 1 {
		return false
	}
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return day <= 31
	case 4, 6, 9, 11:
		return day <= 30
	case 2:
		return day <= 29
	}
	return false
}

func isValidDate(year, month, day int) bool {
	if year < 1970 || !isValidMonthday(month, day) {
		return false
	}
	if month == 2 && !isLeap(year) {
		return day <= 28
	}
	return true
}
