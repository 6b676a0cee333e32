package main

import (
	"github.com/spf13/cobra"

	"github.com/Goden-Gun/reserve-lib/pkg/account"
)

func newRegisterCmd() *cobra.Command {
	var form account.RegisterForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "注册新的图书账户",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if hint := account.PasswordHint(form.Password); hint != account.HintPasswordGood {
				cmd.Printf("提示：%s\n", hint)
			}
			resp, err := a.account.Register(ctx, form)
			if err != nil {
				return err
			}
			cmd.Printf("注册成功，用户编号 %s，请使用该账号登录\n", resp.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "真实姓名")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "手机号，用于接收预约通知")
	cmd.Flags().StringVar(&form.Email, "email", "", "邮箱，用于登录和找回密码")
	cmd.Flags().StringVar(&form.Password, "password", "", "密码，至少 8 位且包含字母和数字")
	cmd.Flags().StringVar(&form.Confirm, "confirm", "", "确认密码")
	cmd.Flags().BoolVar(&form.Agree, "agree", false, "已阅读并同意《服务条款》")
	for _, f := range []string{"name", "phone", "email", "password", "confirm"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "查看当前会话的读者信息",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			profile := a.sess.Profile()
			if profile == nil {
				cmd.Println("未登录")
				return nil
			}
			cmd.Printf("%s（%s）\n", profile.Name, account.MembershipLevel(profile))
			cmd.Printf("读者证号：%s\n", profile.CardNo)
			cmd.Printf("邮箱：%s\n", profile.Email)
			cmd.Printf("电话：%s\n", profile.Phone)
			return nil
		},
	}
}
