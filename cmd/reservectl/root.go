package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Goden-Gun/reserve-lib/pkg/catalog"
	"github.com/Goden-Gun/reserve-lib/pkg/reserve"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reservectl",
		Short:         "图书预约客户端命令行工具",
		Long:          "reservectl 通过命令行演示完整的图书预约流程：浏览目录、提交预约、登录与注销。\n默认走本地 Mock 响应器，设置 RESERVE_USE_MOCK=false 切换到真实后端。",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(
		newBooksCmd(),
		newReserveCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
	)
	return cmd
}

func newBooksCmd() *cobra.Command {
	var (
		category string
		keyword  string
	)
	cmd := &cobra.Command{
		Use:   "books",
		Short: "按分类与关键字浏览可预约图书",
		RunE: func(cmd *cobra.Command, _ []string) error {
			books := catalog.Filter(catalog.Books(), catalog.Category(category), keyword)
			if len(books) == 0 {
				cmd.Println("没有匹配的图书")
				return nil
			}
			for _, b := range books {
				state := fmt.Sprintf("剩余 %d 本", b.Slots)
				if !b.Reservable() {
					state = "暂不可约"
				}
				cmd.Printf("%-5s %s · %s（%s）\n", b.ID, b.Title, b.Author, state)
				cmd.Printf("      %s\n", b.Desc)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(catalog.CategoryTech), "分类: tech / design / literature")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "标题、作者或简介关键字")
	return cmd
}

func newReserveCmd() *cobra.Command {
	var form struct {
		bookID  string
		name    string
		phone   string
		date    string
		comment string
	}
	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "提交一次取书预约",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			ctrl, err := reserve.NewController(reserve.Options{
				API:     a.api,
				Session: a.sess,
			})
			if err != nil {
				return err
			}
			defer ctrl.Close()

			var selected *catalog.Book
			for _, b := range catalog.Books() {
				if b.ID == form.bookID {
					selected = &b
					break
				}
			}
			if selected == nil {
				return fmt.Errorf("没有找到图书: %s", form.bookID)
			}
			if err := ctrl.Select(*selected); err != nil {
				return fmt.Errorf("%s", reserve.FailureMessage(err))
			}

			f := ctrl.Form()
			if form.name != "" {
				f.Name = form.name
			}
			if form.phone != "" {
				f.Phone = form.phone
			}
			f.PickupDate = form.date
			if form.comment != "" {
				f.Comment = form.comment
			}
			ctrl.SetForm(f)

			res, err := ctrl.Submit(ctx)
			if err != nil {
				return fmt.Errorf("%s", reserve.FailureMessage(err))
			}
			cmd.Printf("预约成功，编号 %s（状态 %s）\n", res.ReserveID, res.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&form.bookID, "book", "b", "", "图书编号，见 books 命令")
	cmd.Flags().StringVarP(&form.name, "name", "n", "", "取书人姓名，默认取会话资料")
	cmd.Flags().StringVarP(&form.phone, "phone", "p", "", "联系电话，默认取会话资料")
	cmd.Flags().StringVarP(&form.date, "date", "d", "", "取书日期，例如 2026-09-01 14:00")
	cmd.Flags().StringVarP(&form.comment, "comment", "m", "", "备注")
	_ = cmd.MarkFlagRequired("book")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var accountFlag, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "登录并在本地保存会话",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			profile, err := a.account.Login(ctx, accountFlag, password)
			if err != nil {
				return err
			}
			cmd.Printf("登录成功：%s（读者证号 %s）\n", profile.Name, profile.CardNo)
			return nil
		},
	}
	cmd.Flags().StringVarP(&accountFlag, "account", "a", "", "读者证号 / 手机号 / 邮箱")
	cmd.Flags().StringVarP(&password, "password", "p", "", "密码")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "注销并清除本地会话",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			a.account.Logout(ctx)
			cmd.Println("已退出登录")
			return nil
		},
	}
}
