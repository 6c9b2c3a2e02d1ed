package utils

import (
	"fmt"
	"math/rand"
	"time"

	"naikkelas/pkg/snowflake"

	"github.com/speps/go-hashids/v2"
)

const idCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandString 生成指定长度的随机字符串
func RandString(n int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano() + snowflake.GenID()))
	b := make([]byte, n)
	for i := range b {
		b[i] = idCharset[r.Intn(len(idCharset))]
	}
	return string(b)
}

// GenRowID 生成业务主键，格式: prefix_毫秒时间戳_随机后缀
// 全局唯一即可，不要求有序
func GenRowID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), RandString(6))
}

// GenReferralCode 生成邀请码，格式: REF_ + 8位字母数字
// 基于雪花ID做 hashids 编码，碰撞概率极低，唯一约束兜底
func GenReferralCode() string {
	hd := hashids.NewData()
	hd.Salt = "naikkelas.referral"
	hd.MinLength = 8
	hd.Alphabet = idCharset
	h, _ := hashids.NewWithData(hd)
	e, _ := h.EncodeInt64([]int64{snowflake.GenID()})
	return "REF_" + e[:8]
}
