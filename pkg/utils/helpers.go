package utils

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TimePtr 返回时间的指针，零值返回nil
func TimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// CalculateMD5 计算字节切片的MD5十六进制摘要
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// ConvertArrayToJSON 将字符串数组转换为JSON，序列化失败时返回空数组
func ConvertArrayToJSON(arr []string) datatypes.JSON {
	if len(arr) == 0 {
		return datatypes.JSON("[]")
	}

	jsonBytes, err := json.Marshal(arr)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(jsonBytes)
}
