package imagecheck

import (
	"net/http"
	"strings"
	"time"
)

// Placeholder 图片校验失败时统一使用的本地占位图
const Placeholder = "/images/default-placeholder.png"

const probeTimeout = 5 * time.Second

// Checker 判断一个候选图片地址是否真的指向图片资源
type Checker interface {
	Valid(rawURL string) bool
}

// HTTPChecker 用 HEAD 请求探测图片地址，不下载响应体
type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker() *HTTPChecker {
	return &HTTPChecker{
		Client: &http.Client{Timeout: probeTimeout},
	}
}

// Valid 只有状态码成功且 Content-Type 是 image/* 时才返回 true。
// 任何网络错误、超时、缺失头都视为无效。
func (c *HTTPChecker) Valid(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	req, err := http.NewRequest(http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "image/")
}
