package router

import (
	"context"

	"resume-match-go/internal/api/handler"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler, jobHandler *handler.JobHandler) {
	api := h.Group("/api/v1")

	// 简历提交与查询
	api.POST("/resume/parse", resumeHandler.HandleParseSubmit)
	api.GET("/resume/:uuid", resumeHandler.HandleGetResume)

	// 岗位管理与匹配
	api.POST("/jobs", jobHandler.HandleCreateJob)
	api.GET("/jobs/:job_id", jobHandler.HandleGetJob)
	api.PUT("/jobs/:job_id", jobHandler.HandleUpdateJob)
	api.POST("/jobs/:job_id/match", jobHandler.HandleMatchJob)

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
