package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoe5466/Gudiee-sub001/internal/tui"
	"github.com/zoe5466/Gudiee-sub001/internal/tui/components"
	"github.com/zoe5466/Gudiee-sub001/internal/tui/steps"
	"github.com/zoe5466/Gudiee-sub001/pricing"
)

var (
	quotePrice        int64
	quoteParticipants int
	quoteService      string
)

var quoteCmd = &cobra.Command{
	Use:     "quote",
	Short:   "Show the price breakdown for a booking",
	Example: "  guidee quote --price 800 --participants 2\n  guidee quote --service svc-jiufen --participants 3",
	RunE:    runQuote,
}

func init() {
	quoteCmd.Flags().Int64Var(&quotePrice, "price", 0, "price per person in TWD")
	quoteCmd.Flags().IntVar(&quoteParticipants, "participants", 1, "number of participants")
	quoteCmd.Flags().StringVar(&quoteService, "service", "", "take the price from this service")
}

func runQuote(cmd *cobra.Command, args []string) error {
	if quoteParticipants < 1 {
		return fmt.Errorf("--participants must be at least 1")
	}

	price := quotePrice
	title := "費用明細"
	var env *appEnv
	if quoteService != "" {
		var err error
		env, err = newEnv(cmd)
		if err != nil {
			return err
		}
		svc, err := env.client.GetService(cmd.Context(), quoteService)
		if err != nil {
			return err
		}
		price, title = svc.Price, svc.Title
	}
	if price < 0 {
		return fmt.Errorf("--price must not be negative")
	}

	out := cmd.OutOrStdout()
	theme := tui.DetectTheme(themeOverride)
	if env != nil {
		theme = env.theme
	}
	st := tui.NewStyleSet(theme)
	b := pricing.Calculate(price, quoteParticipants)
	box := components.NewSummaryBox(title, steps.PricingRows(b),
		st.AccentTxt, st.SummaryKey, st.SummaryValue, st.SummaryTotal, st.BorderedBox)
	fmt.Fprintln(out, box.View(56))
	return nil
}
