package entity

import "github.com/rocketscienceinc/connectfour-backend/internal/apperror"

// MoveRecord holds the board as it was before a move and the player who made it.
type MoveRecord struct {
	Board  Board
	Player Player
}

// History is the stack of move records since the last reset, oldest first.
type History struct {
	records []MoveRecord
}

func (that *History) Push(record MoveRecord) {
	that.records = append(that.records, record)
}

// Pop - removes and returns the most recent record.
func (that *History) Pop() (MoveRecord, error) {
	if len(that.records) == 0 {
		return MoveRecord{}, apperror.ErrEmptyHistory
	}

	last := len(that.records) - 1
	record := that.records[last]
	that.records = that.records[:last]

	return record, nil
}

// Peek - returns the most recent record without removing it.
func (that *History) Peek() (MoveRecord, bool) {
	if len(that.records) == 0 {
		return MoveRecord{}, false
	}

	return that.records[len(that.records)-1], true
}

func (that *History) Clear() {
	that.records = nil
}

func (that *History) Len() int {
	return len(that.records)
}

// Records - returns a copy of the stack, oldest first.
func (that *History) Records() []MoveRecord {
	return append([]MoveRecord(nil), that.records...)
}
