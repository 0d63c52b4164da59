package serializers

import "time"

// TimestampLayout renders times in UTC with six fractional digits, so
// rendered timestamps sort lexically in time order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp is a time.Time with a fixed-width JSON form.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	parsed, err := time.Parse(`"`+time.RFC3339Nano+`"`, string(b))
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.
func (t Timestamp) Time() time.Time { return time.Time(t) }
