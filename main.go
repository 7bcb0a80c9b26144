// @title Study Coach 后端 API
// @version 1.0
// @description 学习会话、学习目标、提醒与学习分析服务。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "study_coach_backend/cmd"

func main() {
	cmd.Execute()
}
