package httpdate

const (
	shortDays = "SunMonTueWedThuFriSat"
	months    = "JanFebMarAprMayJunJulAugSepOctNovDec"
)

var longDays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// FormatTimestamp writes seconds since the epoch in one of the three HTTP
// date formats. Unknown formats produce IMF-fixdate.
func FormatTimestamp(ts int64, f Format) string {
	return string(AppendFormat(make([]byte, 0, 32), ts, f))
}

// AppendFormat appends ts, formatted as f, to dst and returns the
// extended buffer.
func AppendFormat(dst []byte, ts int64, f Format) []byte {
	days := ts / secondsPerDay
	secs := ts % secondsPerDay
	if secs < 0 {
		secs += secondsPerDay
		days--
	}
	year, month, day := civilFromDays(days)
	wd := weekdayFromDays(days)
	hour, minute, second := int(secs/3600), int(secs/60%60), int(secs%60)
	mon := months[3*(month-1) : 3*month]

	switch f {
	case RFC850:
		// Sunday, 06-Nov-94 08:49:37 GMT
		dst = append(dst, longDays[wd]...)
		dst = append(dst, ',', ' ')
		dst = append2(dst, day)
		dst = append(dst, '-')
		dst = append(dst, mon...)
		dst = append(dst, '-')
		dst = append2(dst, year%100)
		dst = append(dst, ' ')
		dst = appendClock(dst, hour, minute, second)
		dst = append(dst, " GMT"...)
	case ASCTime:
		// Sun Nov  6 08:49:37 1994
		dst = append(dst, shortDays[3*wd:3*wd+3]...)
		dst = append(dst, ' ')
		dst = append(dst, mon...)
		dst = append(dst, ' ')
		if day < 10 {
			dst = append(dst, ' ', byte('0'+day))
		} else {
			dst = append2(dst, day)
		}
		dst = append(dst, ' ')
		dst = appendClock(dst, hour, minute, second)
		dst = append(dst, ' ')
		dst = append4(dst, year)
	default:
		// Sun, 06 Nov 1994 08:49:37 GMT
		dst = append(dst, shortDays[3*wd:3*wd+3]...)
		dst = append(dst, ',', ' ')
		dst = append2(dst, day)
		dst = append(dst, ' ')
		dst = append(dst, mon...)
		dst = append(dst, ' ')
		dst = append4(dst, year)
		dst = append(dst, ' ')
		dst = appendClock(dst, hour, minute, second)
		dst = append(dst, " GMT"...)
	}
	return dst
}

func append2(dst []byte, n int) []byte {
	return append(dst, byte('0'+n/10%10), byte('0'+n%10))
}

func append4(dst []byte, n int) []byte {
	return append(dst, byte('0'+n/1000%10), byte('0'+n/100%10), byte('0'+n/10%10), byte('0'+n%10))
}

func appendClock(dst []byte, hour, minute, second int) []byte {
	dst = append2(dst, hour)
	dst = append(dst, ':')
	dst = append2(dst, minute)
	dst = append(dst, ':')
	return append2(dst, second)
}
