package handler

import (
	"net/http"
	"time"

	"urlshort-platform/internal/analytics"
	"urlshort-platform/internal/resolver"
	"urlshort-platform/internal/shortener"

	"github.com/gin-gonic/gin"
)

// ShortLinkHandler 处理器
type ShortLinkHandler struct {
	service  *shortener.Service
	resolver *resolver.Resolver
	view     *analytics.View
}

// NewShortLinkHandler 创建处理器实例
func NewShortLinkHandler(service *shortener.Service, res *resolver.Resolver, view *analytics.View) *ShortLinkHandler {
	return &ShortLinkHandler{
		service:  service,
		resolver: res,
		view:     view,
	}
}

// IndexPage 根路径即提交入口的说明页
func (h *ShortLinkHandler) IndexPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "urlshort-platform",
		"routes": gin.H{
			"shorten": "POST /api/shorten",
			"stats":   "GET /stats",
			"resolve": "GET /:code",
		},
	})
}

// HealthCheck 健康检查
func (h *ShortLinkHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// ShortenRequest 批量提交请求体，最多一次提交若干行
type ShortenRequest struct {
	Links []shortener.Submission `json:"links" binding:"required"`
}

// ShortenRow 单行提交的响应
type ShortenRow struct {
	ShortCode string    `json:"short_code,omitempty" example:"promo"`
	ShortURL  string    `json:"short_url,omitempty" example:"http://localhost:8080/promo"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Skipped   bool      `json:"skipped,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
}

// ShortenResponse 批量提交的响应
type ShortenResponse struct {
	Created int          `json:"created"`
	Rows    []ShortenRow `json:"rows"`
}

// Shorten godoc
// @Summary 批量创建短链接
// @Description 提交一批长 URL，每行可带自定义短码与有效期（分钟）；逐行返回结果，单行失败不影响其余行
// @Tags ShortLink
// @Accept  json
// @Produce  json
// @Param   links  body   ShortenRequest  true  "提交的行"
// @Success 201 {object} ShortenResponse "至少一行创建成功"
// @Failure 400 {object} ShortenResponse "没有任何一行有效"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /api/shorten [post]
func (h *ShortLinkHandler) Shorten(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	results, err := h.service.Submit(c.Request.Context(), req.Links)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建短链接失败"})
		return
	}

	resp := ShortenResponse{Rows: make([]ShortenRow, len(results))}
	for i, r := range results {
		switch {
		case r.Record != nil:
			resp.Created++
			resp.Rows[i] = ShortenRow{
				ShortCode: r.Record.ShortCode,
				ShortURL:  "http://" + c.Request.Host + "/" + r.Record.ShortCode,
				ExpiresAt: r.Record.ExpiresAt,
			}
		case len(r.Errs) > 0:
			msgs := make([]string, len(r.Errs))
			for j, e := range r.Errs {
				msgs[j] = e.Error()
			}
			resp.Rows[i] = ShortenRow{Errors: msgs}
		default:
			resp.Rows[i] = ShortenRow{Skipped: true}
		}
	}

	status := http.StatusCreated
	if resp.Created == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, resp)
}

// RedirectToOriginal godoc
// @Summary 短码跳转
// @Description 解析短码并 302 跳转到原始地址；未命中返回 404，已过期返回 410
// @Tags ShortLink
// @Produce  json
// @Param   code  path   string  true  "短码"
// @Success 302 "跳转到原始地址"
// @Failure 400 {object} gin.H "请求错误"
// @Failure 404 {object} gin.H "短码不存在"
// @Failure 410 {object} gin.H "链接已过期"
// @Router /{code} [get]
func (h *ShortLinkHandler) RedirectToOriginal(c *gin.Context) {
	code := c.Param("code")
	res := h.resolver.Resolve(c.Request.Context(), code, c.ClientIP(), c.GetHeader("Referer"))

	switch res.State {
	case resolver.StateRedirect:
		c.Redirect(http.StatusFound, res.TargetURL)
	case resolver.StateNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": res.Message})
	case resolver.StateExpired:
		// 过期属于可预期情况，以较低的严重级别呈现
		c.JSON(http.StatusGone, gin.H{"warning": res.Message})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Message})
	}
}

// GetAllLinks godoc
// @Summary 获取全部短链接
// @Description 返回全部记录及其按时间排列的点击明细
// @Tags Analytics
// @Produce  json
// @Success 200 {array} analytics.LinkStats "记录列表"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /api/links [get]
func (h *ShortLinkHandler) GetAllLinks(c *gin.Context) {
	links, err := h.view.Links(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取链接失败"})
		return
	}
	c.JSON(http.StatusOK, links)
}

// StatsResponse 统计页响应
type StatsResponse struct {
	Summary analytics.Overview    `json:"summary"`
	Links   []analytics.LinkStats `json:"links"`
}

// GetStats godoc
// @Summary 统计视图
// @Description 全局汇总加逐条明细，只读投影
// @Tags Analytics
// @Produce  json
// @Success 200 {object} StatsResponse "统计数据"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /api/stats [get]
func (h *ShortLinkHandler) GetStats(c *gin.Context) {
	summary, err := h.view.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取统计失败"})
		return
	}
	links, err := h.view.Links(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取统计失败"})
		return
	}
	c.JSON(http.StatusOK, StatsResponse{Summary: summary, Links: links})
}
