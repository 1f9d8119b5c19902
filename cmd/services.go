package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zoe5466/Gudiee-sub001/internal/tui"
	"github.com/zoe5466/Gudiee-sub001/pricing"
	"github.com/zoe5466/Gudiee-sub001/types"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Browse bookable tours",
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tours",
	RunE:  runServicesList,
}

var servicesShowCmd = &cobra.Command{
	Use:   "show <service-id>...",
	Short: "Show tour details",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runServicesShow,
}

func init() {
	servicesCmd.AddCommand(servicesListCmd)
	servicesCmd.AddCommand(servicesShowCmd)
}

func runServicesList(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	list, err := env.client.ListServices(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(env.out, "目前沒有可預訂的服務")
		return nil
	}

	st := tui.NewStyleSet(env.theme)
	for _, svc := range list {
		fmt.Fprintf(env.out, "%s  %s  %s  %s / 人\n",
			st.AccentTxt.Render(svc.ID),
			st.PrimaryTxt.Render(svc.Title),
			st.DimTxt.Render(svc.Location),
			pricing.Format(svc.Price))
	}
	return nil
}

// runServicesShow fetches every requested service concurrently and prints
// them in argument order.
func runServicesShow(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}

	found := make([]*types.Service, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)
	for i, id := range args {
		g.Go(func() error {
			svc, err := env.client.GetService(ctx, id)
			if err != nil {
				return fmt.Errorf("service %s: %w", id, err)
			}
			found[i] = svc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	st := tui.NewStyleSet(env.theme)
	for i, svc := range found {
		if i > 0 {
			fmt.Fprintln(env.out)
		}
		fmt.Fprintln(env.out, renderService(env.theme, st, *svc))
	}
	return nil
}

func renderService(theme tui.TermTheme, st *tui.StyleSet, svc types.Service) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(svc.Title) + "  " + st.DimTxt.Render(svc.ID) + "\n")

	meta := []string{svc.Location, pricing.Format(svc.Price) + " / 人"}
	if svc.DurationHours > 0 {
		meta = append(meta, fmt.Sprintf("%g 小時", svc.DurationHours))
	}
	if svc.MaxParticipants > 0 {
		meta = append(meta, fmt.Sprintf("最多 %d 人", svc.MaxParticipants))
	}
	if svc.GuideName != "" {
		meta = append(meta, "導遊 "+svc.GuideName)
	}
	b.WriteString(st.SecondaryTxt.Render(strings.Join(meta, " · ")) + "\n")
	if len(svc.StartTimes) > 0 {
		b.WriteString(st.DimTxt.Render("出發時間："+strings.Join(svc.StartTimes, "、")) + "\n")
	}

	if svc.Description != "" {
		md, err := tui.RenderMarkdown(theme, svc.Description, 80)
		if err != nil {
			md = svc.Description
		}
		b.WriteString(md + "\n")
	}
	return b.String()
}
