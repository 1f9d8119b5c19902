package steps

import (
	"fmt"

	"github.com/zoe5466/Gudiee-sub001/internal/tui"
	"github.com/zoe5466/Gudiee-sub001/internal/tui/components"
	"github.com/zoe5466/Gudiee-sub001/pricing"
	"github.com/zoe5466/Gudiee-sub001/types"
)

// PricingRows lays out a breakdown for a SummaryBox.
func PricingRows(b pricing.Breakdown) []components.SummaryRow {
	return []components.SummaryRow{
		{Key: "單價", Value: pricing.Format(b.BasePrice)},
		{Key: "人數", Value: fmt.Sprintf("%d 人", b.Participants)},
		{Key: "小計", Value: pricing.Format(b.Subtotal)},
		{Key: "服務費 (10%)", Value: pricing.Format(b.ServiceFee)},
		{Key: "稅金 (5%)", Value: pricing.Format(b.Tax)},
		{Key: "總計", Value: pricing.Format(b.Total), Highlight: true},
	}
}

// ServiceHeader shows the service being booked and the price for the
// participants entered so far. quote is read on every render.
func ServiceHeader(styles *tui.StyleSet, svc types.Service, quote func() pricing.Breakdown) tui.HeaderFunc {
	return func(step, width int) string {
		out := "  " + styles.Title.Render(svc.Title) + "\n"
		meta := svc.Location
		if svc.GuideName != "" {
			meta += " · 導遊 " + svc.GuideName
		}
		if svc.DurationHours > 0 {
			meta += fmt.Sprintf(" · %g 小時", svc.DurationHours)
		}
		out += "  " + styles.DimTxt.Render(meta) + "\n"

		b := quote()
		if b.Participants == 0 {
			return out + "  " + styles.SecondaryTxt.Render(pricing.Format(svc.Price)+" / 人") + "\n"
		}
		box := components.NewSummaryBox("費用明細", PricingRows(b),
			styles.AccentTxt, styles.SummaryKey, styles.SummaryValue, styles.SummaryTotal, styles.BorderedBox)
		return out + box.View(min(width, 48)) + "\n"
	}
}
