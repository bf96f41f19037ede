package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock é o relógio injetado nos casos de uso.
type Clock interface {
	Now() time.Time
}

type salonClock struct {
	loc *time.Location
}

// NewClock devolve um relógio no fuso do salão.
func NewClock(tz string) Clock {
	return salonClock{loc: Location(tz)}
}

func (c salonClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed é um relógio parado, usado em testes e scripts.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
