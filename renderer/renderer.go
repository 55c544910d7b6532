// Package renderer turns ledger and catalog data into markdown reports
// for terminal display.
package renderer

import (
	"fmt"

	"github.com/miraclehq/miracle"
)

// signedPercent renders a percent with an explicit sign, matching how the
// reports mark gains and losses.
func signedPercent(p miracle.Percent) string {
	return fmt.Sprintf("%+.2f%%", float64(p))
}
