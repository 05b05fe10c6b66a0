package main

import (
	"fmt"
	"os"
	// 容器里可能没有系统时区库，Asia/Seoul 从内嵌数据加载
	_ "time/tzdata"

	"Gigbell/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
