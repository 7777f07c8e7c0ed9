package utils

import "time"

// IST is the exchange timezone. A fixed zone avoids a tzdata dependency on
// minimal container images.
var IST = time.FixedZone("Asia/Kolkata", 5*3600+30*60)

// TradeDate formats a timestamp as the snapshot document's date key.
func TradeDate(t time.Time) string {
	return t.Format("2006-01-02")
}
