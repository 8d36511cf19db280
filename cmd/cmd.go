package cmd

import (
	"context"
	"os"

	"github.com/dszqbsm/wannasurf/cmd/crawl"
	"github.com/dszqbsm/wannasurf/version"
	"github.com/spf13/cobra"
)

// cmd.go借助cobra库定义了命令行界面，crawl子命令执行一次完整或采样的抓取并写出报表，version子命令打印版本信息
// 执行./wannasurf -h能看到cobra自动生成的帮助文档

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version.",
	Long:  "print version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version.Printer()
	},
}

func Execute() {
	var rootCmd = &cobra.Command{Use: "wannasurf", SilenceUsage: true} // 仅用于组织和挂载子命令
	rootCmd.AddCommand(crawl.CrawlCmd, versionCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
