package database

import (
	"time"

	"github.com/zapponejosh/zodiac-api/internal/zodiac"
)

// Subject is one resolved date as remembered in history.
type Subject struct {
	Date    string         `json:"date"`
	Animal  zodiac.Animal  `json:"animal"`
	Element zodiac.Element `json:"element"`
}

// SubjectOf summarizes a resolved sign.
func SubjectOf(s zodiac.Sign) Subject {
	return Subject{Date: s.Date, Animal: s.Animal, Element: s.Element}
}

// HistoryEntry is one past calculation of a client.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	First     Subject   `json:"first"`
	Second    *Subject  `json:"second,omitempty"`
	Score     *int      `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// sameDates reports whether e was made from the same input dates as o.
func (e *HistoryEntry) sameDates(o *HistoryEntry) bool {
	if e.First.Date != o.First.Date {
		return false
	}
	if e.Second == nil || o.Second == nil {
		return e.Second == nil && o.Second == nil
	}
	return e.Second.Date == o.Second.Date
}
