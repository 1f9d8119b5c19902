package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoe5466/Gudiee-sub001/flows"
	"github.com/zoe5466/Gudiee-sub001/internal/tui"
	"github.com/zoe5466/Gudiee-sub001/internal/tui/steps"
	"github.com/zoe5466/Gudiee-sub001/pricing"
	"github.com/zoe5466/Gudiee-sub001/types"
)

var bookCmd = &cobra.Command{
	Use:   "book <service-id>",
	Short: "Book a tour",
	Long: "Book a tour in three steps: schedule, contact details, and review.\n" +
		"With --modal the quick-booking flow is used instead, which pays for the order right away.\n\n" +
		"Fields: date, startTime, participants, name, email, phone, specialRequests, agreeTerms.\n" +
		"Quick booking adds nationality, emergencyContact, document and paymentMethod.",
	Example: "  guidee book svc-jiufen\n" +
		"  guidee book svc-jiufen --modal --non-interactive --set date=2026-11-01 --set startTime=09:00 \\\n" +
		"    --set participants=2 --set paymentMethod=line_pay --set agreeTerms=yes",
	Args: cobra.ExactArgs(1),
	RunE: runBook,
}

func init() {
	bookCmd.Flags().Bool("modal", false, "use the quick-booking flow with payment")
	bookCmd.Flags().StringArray("set", nil, "set a field: name=value (repeatable)")
}

func runBook(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	svc, err := flows.LoadService(ctx, env.client, args[0])
	if err != nil {
		return err
	}
	modal, _ := cmd.Flags().GetBool("modal")
	sets, _ := cmd.Flags().GetStringArray("set")

	var contact flows.BookingContact
	if env.session != nil {
		u := env.session.User
		contact = flows.BookingContact{Name: u.Name, Email: u.Email, Phone: u.Phone}
	}

	hooks := &flowHooks{}
	var result any
	if modal {
		ctrl := flows.NewBookingModal(env.client, *svc, env.logger, hooks.options(env)...)
		ctrl.Edit("name", func(f *flows.BookingModalForm) {
			f.Contact.Name, f.Contact.Email, f.Contact.Phone = contact.Name, contact.Email, contact.Phone
		})
		if err := applySets(ctrl, sets); err != nil {
			return err
		}
		header := func(st *tui.StyleSet) tui.HeaderFunc {
			return steps.ServiceHeader(st, *svc, func() pricing.Breakdown { return ctrl.Form().Pricing() })
		}
		if err := runFlow(ctx, env, ctrl, hooks, header); err != nil {
			return err
		}
		result = ctrl.Outcome().Result
	} else {
		ctrl := flows.NewBooking(env.client, *svc, contact, hooks.options(env)...)
		if err := applySets(ctrl, sets); err != nil {
			return err
		}
		header := func(st *tui.StyleSet) tui.HeaderFunc {
			return steps.ServiceHeader(st, *svc, func() pricing.Breakdown { return ctrl.Form().Pricing() })
		}
		if err := runFlow(ctx, env, ctrl, hooks, header); err != nil {
			return err
		}
		result = ctrl.Outcome().Result
	}

	if order, ok := result.(*types.Order); ok {
		fmt.Fprintf(env.out, "訂單 %s（%s）總金額 %s\n", order.ID, order.Status, pricing.Format(order.Pricing.Total))
	}
	if route := hooks.Route(); route != "" {
		env.logger.Debug("navigate", map[string]any{"route": route})
	}
	return nil
}
