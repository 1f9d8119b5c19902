package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoe5466/Gudiee-sub001/flows"
	"github.com/zoe5466/Gudiee-sub001/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Set up your guide profile and identity verification",
	Long: "Three steps: basic info, identity verification (KYC), and introduction.\n\n" +
		"Fields: name, phone, location, idNumber, idFront, idBack, bio, languages, specialties, experience.\n" +
		"Image fields take a path to a PNG/JPEG/GIF/WebP file of at most 5MB.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if env.session == nil {
			return fmt.Errorf("請先登入或註冊 (guidee login / guidee register)")
		}
		sets, _ := cmd.Flags().GetStringArray("set")
		return runProfileSetup(cmd, env, env.session.User, sets)
	},
}

func init() {
	profileCmd.Flags().StringArray("set", nil, "set a field: name=value (repeatable)")
}

func runProfileSetup(cmd *cobra.Command, env *appEnv, user types.User, sets []string) error {
	hooks := &flowHooks{}
	ctrl := flows.NewProfileSetup(env.client, user, hooks.options(env)...)
	if err := applySets(ctrl, sets); err != nil {
		return err
	}
	if err := runFlow(cmd.Context(), env, ctrl, hooks, nil); err != nil {
		return err
	}

	// Keep the saved user in step with what was just submitted.
	req := ctrl.Form().Request()
	user.Name, user.Phone, user.Location = req.Name, req.Phone, req.Location
	user.Bio, user.Languages, user.Specialties, user.Experience = req.Bio, req.Languages, req.Specialties, req.Experience
	if req.IDNumber != "" {
		user.KYCStatus = types.KYCPending
	}
	return env.saveSession(&user)
}
