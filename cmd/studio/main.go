package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/config"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/sync"
	"github.com/spf13/cobra"
)

var adminSecret string

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "AIGC Studio 控制台客户端",
	Long:  "AIGC Studio 控制台客户端：查看小组状态、生成日报、导出导入数据",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSynchronizer()
		if err != nil {
			return err
		}
		defer flush(s)

		teams := s.Teams()
		fmt.Printf("共 %d 个小组，模式 %s\n", len(teams), s.Mode())
		for _, t := range teams {
			fmt.Printf("  [%s] %s 进度 %d%% 实耗 %.0f/%.0f\n",
				t.Status, t.Title, t.Progress, t.ActualCost, t.Budget)
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "打印当天制作日报",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSynchronizer()
		if err != nil {
			return err
		}
		defer flush(s)

		fmt.Println(s.Report(time.Now()))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "导出全部数据到指定文件",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSynchronizer()
		if err != nil {
			return err
		}
		defer flush(s)

		data, err := s.ExportSnapshot()
		if err != nil {
			return fmt.Errorf("导出失败: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("写导出文件失败: %w", err)
		}
		fmt.Printf("已导出到 %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "从指定文件导入数据（需要管理口令）",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSynchronizer()
		if err != nil {
			return err
		}
		defer flush(s)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("读导入文件失败: %w", err)
		}
		result := s.ImportSnapshot(data)
		if result.Status == sync.StatusRejected {
			return fmt.Errorf("导入被拒绝: %w", result.Err)
		}
		fmt.Printf("导入完成（%s）\n", result.Status)
		return nil
	},
}

// loadSynchronizer 按配置创建同步器并完成启动加载与管理解锁
func loadSynchronizer() (*sync.Synchronizer, error) {
	cfg := config.Load()
	s := sync.FromConfig(cfg.Sync)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Load(ctx)

	if s.Mode() == sync.ModeLocalFallback {
		fmt.Println("远端不可用，已切换到本地数据")
	}

	if adminSecret != "" && !s.UnlockAdmin(adminSecret) {
		return nil, fmt.Errorf("管理口令不正确")
	}
	return s, nil
}

func flush(s *sync.Synchronizer) {
	if err := s.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "本地缓存落盘失败: %v\n", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&adminSecret, "admin", "", "管理解锁口令")
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
