package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var compactSymbolRegex = regexp.MustCompile(`^([A-Z]+)\d{2}[A-Z]{3}(\d+)(CE|PE)$`)

// BuildCompactSymbol assembles the compact venue symbol, e.g.
// NIFTY + 26JAN + 24350 + CE -> NIFTY26JAN24350CE.
func BuildCompactSymbol(underlying string, symbolExpiry string, strike int, optionType OptionType) string {
	return fmt.Sprintf("%s%s%d%s", underlying, symbolExpiry, strike, optionType)
}

// BuildTradingSymbol converts a compact symbol such as NIFTY26JAN24350CE into
// the exchange display form "NIFTY 24350 CE 26 JAN 26". Returns false when
// either the symbol or the expiry key does not match the expected shape;
// downstream reference lookups for such a record simply miss.
func BuildTradingSymbol(symbol string, expiryKey string) (string, bool) {
	expiry, err := time.Parse("2006-01-02", expiryKey)
	if err != nil {
		return "", false
	}

	m := compactSymbolRegex.FindStringSubmatch(symbol)
	if m == nil {
		return "", false
	}

	underlying, strike, optionType := m[1], m[2], m[3]

	return strings.Join([]string{
		underlying,
		strike,
		optionType,
		fmt.Sprintf("%02d", expiry.Day()),
		MonthName(expiry.Month()),
		fmt.Sprintf("%02d", expiry.Year()%100),
	}, " "), true
}
