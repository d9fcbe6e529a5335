package entities

import (
	"time"
)

// AlertDayLayout formats the calendar day an alert belongs to.
const AlertDayLayout = "2006-01-02"

// AlertRecord marks that a low-stock alert for an item was sent on a day.
// At most one record exists per (stock item, day).
//
// Storage model (DynamoDB):
//   - PK: id (stock_item_id#day)
type AlertRecord struct {
	ID          string    `json:"id"`
	StockItemID string    `json:"stock_item_id"`
	Day         string    `json:"day"`
	Recipients  []string  `json:"recipients"`
	CreatedAt   time.Time `json:"created_at"`
}

func AlertRecordID(stockItemID, day string) string {
	return stockItemID + "#" + day
}

// AlertDay returns the calendar day of t in loc.
func AlertDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(AlertDayLayout)
}

func NewAlertRecord(stockItemID, day string, recipients []string, now time.Time) AlertRecord {
	return AlertRecord{
		ID:          AlertRecordID(stockItemID, day),
		StockItemID: stockItemID,
		Day:         day,
		Recipients:  append([]string(nil), recipients...),
		CreatedAt:   now,
	}
}
