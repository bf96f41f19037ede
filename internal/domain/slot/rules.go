package slot

import (
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

const layoutHM = "15:04"

// ParseHM converte "HH:MM" em minutos desde a meia-noite.
func ParseHM(hm string) (int, error) {
	t, err := time.Parse(layoutHM, hm)
	if err != nil || len(hm) != len(layoutHM) {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidTime)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate confere dia da semana, formato e início < fim.
func Validate(weekday int, start, end string) error {
	if weekday < 0 || weekday > 6 {
		return httperr.ErrBusiness(httperr.CodeInvalidWeekday)
	}

	s, err := ParseHM(start)
	if err != nil {
		return err
	}
	e, err := ParseHM(end)
	if err != nil {
		return err
	}
	if s >= e {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeRange)
	}
	return nil
}

// Overlaps informa se os intervalos [aStart,aEnd) e [bStart,bEnd) se cruzam.
// Horários encostados (10:00-11:00 e 11:00-12:00) não conflitam.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	as, _ := ParseHM(aStart)
	ae, _ := ParseHM(aEnd)
	bs, _ := ParseHM(bStart)
	be, _ := ParseHM(bEnd)
	return as < be && bs < ae
}

// AssertNoOverlap verifica o candidato contra os horários ativos do mesmo
// dia, ignorando o próprio registro.
func AssertNoOverlap(candidate models.TimeSlot, existing []models.TimeSlot) error {
	for _, s := range existing {
		if s.ID == candidate.ID || !s.Active || s.Weekday != candidate.Weekday {
			continue
		}
		if Overlaps(candidate.StartTime, candidate.EndTime, s.StartTime, s.EndTime) {
			return httperr.ErrBusiness(httperr.CodeSlotOverlap)
		}
	}
	return nil
}
