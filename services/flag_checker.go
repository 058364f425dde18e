// file: services/flag_checker.go
package services

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"YukthiCTF/models"
)

// FlagChecker 单个 Key 的匹配策略。实现必须是纯函数：
// 相同输入永远给出相同结果，不产生副作用
type FlagChecker interface {
	Match(key models.FlagKey, submitted string) (bool, error)
}

var checkerRegistry = map[models.KeyType]FlagChecker{}

// RegisterChecker 注册新的匹配策略，新增题型不需要改动提交网关。
// 注册表没有加锁，必须在 init() 里、开始服务请求之前完成全部注册
func RegisterChecker(t models.KeyType, c FlagChecker) {
	checkerRegistry[t] = c
}

// CheckerFor 未注册的类型是配置错误，直接报错而不是静默回退
func CheckerFor(t models.KeyType) (FlagChecker, error) {
	c, ok := checkerRegistry[t]
	if !ok {
		return nil, fmt.Errorf("flag checker: 未注册的 key 类型 %q", t)
	}
	return c, nil
}

// GradeSubmission 逐个 Key 判定，任意一个匹配即判对。
// 策略跟着 Key 走，同一道题的多个 Key 可以混用不同匹配方式
func GradeSubmission(keys []models.FlagKey, submitted string) (bool, error) {
	for _, key := range keys {
		checker, err := CheckerFor(key.KeyType)
		if err != nil {
			return false, err
		}
		ok, err := checker.Match(key, submitted)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

type staticChecker struct{}

func (staticChecker) Match(key models.FlagKey, submitted string) (bool, error) {
	return key.Secret == submitted, nil
}

type caseInsensitiveChecker struct{}

func (caseInsensitiveChecker) Match(key models.FlagKey, submitted string) (bool, error) {
	return strings.EqualFold(key.Secret, submitted), nil
}

type regexChecker struct{}

// 按模式串缓存编译结果，热门题目不用每次提交都重新编译。
// 管理员改 Key 会换模式串，旧条目白占一点内存，不影响正确性
var regexCache sync.Map // pattern -> *regexp.Regexp

// Match 全串匹配。只锚定开头会让 flag{x} 模式接受带尾巴的提交
func (regexChecker) Match(key models.FlagKey, submitted string) (bool, error) {
	if cached, ok := regexCache.Load(key.Secret); ok {
		return cached.(*regexp.Regexp).MatchString(submitted), nil
	}
	re, err := regexp.Compile(`\A(?:` + key.Secret + `)\z`)
	if err != nil {
		return false, fmt.Errorf("flag checker: key %d 的正则无效: %w", key.ID, err)
	}
	regexCache.Store(key.Secret, re)
	return re.MatchString(submitted), nil
}

func init() {
	RegisterChecker(models.KeyTypeStatic, staticChecker{})
	RegisterChecker(models.KeyTypeCaseInsensitive, caseInsensitiveChecker{})
	RegisterChecker(models.KeyTypeRegex, regexChecker{})
}
