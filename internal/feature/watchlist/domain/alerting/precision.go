// Package alerting decides which tracked stocks have moved past their configured alert threshold.
package alerting

import "strconv"

// SafeSignificantDigits is the number of significant decimal digits kept by LimitToSafePrecision.
const SafeSignificantDigits = 16

// LimitPrecision rounds v to the given number of significant decimal digits.
func LimitPrecision(v float64, digits int) float64 {
	// 'g' フォーマットで有効桁数に丸めてから再パースする。丸め済みの文字列は常にパース可能
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// LimitToSafePrecision rounds v to 16 significant digits, discarding binary noise
// in the last digits of a float64.
func LimitToSafePrecision(v float64) float64 {
	return LimitPrecision(v, SafeSignificantDigits)
}
