package i18n

import (
	"fmt"
	"strings"

	"github.com/recycle-link/internal/constants"

	"github.com/gin-gonic/gin"
)

// 语言标识常量
const (
	LocaleEN = constants.LocaleEnUS
	LocaleHI = constants.LocaleHiIN
)

// DefaultLocale 默认站点语言
const DefaultLocale = LocaleEN

// ResolveLocale 解析请求语言：?lang= 优先，其次 Accept-Language，最后回退默认语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return DefaultLocale
}

// T 按语言查找文案，未命中时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if catalog, ok := messages[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if locale != DefaultLocale {
		if msg, ok := messages[DefaultLocale][key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 查找文案并格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	template := T(locale, key)
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

func normalizeLocale(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch {
	case tag == "":
		return ""
	case strings.HasPrefix(tag, "hi"):
		return LocaleHI
	case strings.HasPrefix(tag, "en"):
		return LocaleEN
	}
	return ""
}
