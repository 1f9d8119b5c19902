package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoe5466/Gudiee-sub001/flows"
	"github.com/zoe5466/Gudiee-sub001/types"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Guidee account",
	Long: "Create a customer or guide account. Guides continue straight into profile setup.\n\n" +
		"Fields: name, email, phone, userType, password, confirmPassword, agreeTerms.",
	Example: "  guidee register --type guide\n" +
		"  guidee register --non-interactive --set name=王小明 --set email=wang@example.com \\\n" +
		"    --set phone=0912345678 --set password=Secret123 --set confirmPassword=Secret123 --set agreeTerms=yes",
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().String("type", types.RoleCustomer, "account type: customer or guide")
	registerCmd.Flags().StringArray("set", nil, "set a field: name=value (repeatable)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	userType, _ := cmd.Flags().GetString("type")
	sets, _ := cmd.Flags().GetStringArray("set")

	hooks := &flowHooks{}
	ctrl := flows.NewRegister(env.client, userType, hooks.options(env)...)
	if err := applySets(ctrl, sets); err != nil {
		return err
	}
	if err := runFlow(ctx, env, ctrl, hooks, nil); err != nil {
		return err
	}

	user, _ := ctrl.Outcome().Result.(*types.User)
	if err := env.saveSession(user); err != nil {
		return err
	}

	if hooks.Route() != flows.RouteProfileSetup || user == nil {
		return nil
	}
	if !env.interactive {
		fmt.Fprintln(env.out, "下一步：執行 guidee profile 完成導遊資料設定")
		return nil
	}
	return runProfileSetup(cmd, env, *user, nil)
}
