package printer

import (
	"github.com/dustin/go-humanize"
)

// Yen formats a whole-yen amount with thousands separators, e.g. "¥12,345".
func Yen(amount int64) string {
	if amount < 0 {
		return "-¥" + humanize.Comma(-amount)
	}
	return "¥" + humanize.Comma(amount)
}
