package validate

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
)

// 输入校验失败的错误分类，按行上报给提交方
var (
	ErrInvalidURL       = errors.New("无效的 URL")
	ErrInvalidShortcode = errors.New("无效的短码")
	ErrInvalidValidity  = errors.New("无效的有效期")
)

var shortcodePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`)

// URL 校验 s 是否为 http/https 协议的绝对 URL
func URL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Shortcode 校验 s 是否为 1-16 位字母数字短码
func Shortcode(s string) error {
	if !shortcodePattern.MatchString(s) {
		return ErrInvalidShortcode
	}
	return nil
}

// ValidityMinutes 解析有效期（分钟），必须是正整数
// 空白输入属于调用方的 "默认 30 分钟" 语义，不会走到这里
func ValidityMinutes(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidValidity
	}
	if n <= 0 {
		return 0, ErrInvalidValidity
	}
	return n, nil
}
