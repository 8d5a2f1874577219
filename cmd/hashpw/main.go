// hashpw 离线生成 bcrypt 密码哈希，用于初始化或人工修复账号。
// 用法: hashpw -p 明文密码 [-cost 10]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	var (
		password string
		cost     int
	)
	flag.StringVar(&password, "p", "", "明文密码，不提供则从标准输入读取")
	flag.IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost 参数")
	flag.Parse()

	if password == "" {
		fmt.Fprint(os.Stderr, "请输入密码: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("读取密码失败: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		log.Fatal("密码不能为空")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		log.Fatalf("cost 必须在 %d 到 %d 之间", bcrypt.MinCost, bcrypt.MaxCost)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		log.Fatalf("生成哈希失败: %v", err)
	}
	fmt.Println(string(hashed))
}
