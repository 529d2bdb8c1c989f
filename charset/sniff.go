package charset

import (
	"github.com/saintfish/chardet"
)

// Sniff runs a general-purpose statistical detector over the sample and
// returns its best-guess IANA charset name. It is advisory only: the
// returned name may be outside the supported label set (Big5, Shift_JIS
// and so on). When range decoding ends in the hex fallback, the sniffed
// name tells the caller what the content probably was.
//
// The second return value is false when the detector has no answer.
func Sniff(sample []byte) (string, bool) {
	if len(sample) == 0 {
		return "", false
	}
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil || result.Charset == "" {
		return "", false
	}
	return result.Charset, true
}
