package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// 远端存储的 JSONB 列依驱动行为不同，可能返回 JSON 数组，
// 也可能返回再编码一层的 JSON 字符串（"[\"a\",\"b\"]"）。
// Flex* 类型统一把两种形态解成切片，解析失败时退化为空切片，绝不报错。

// decodeFlex 解码数组或字符串包裹的数组，失败返回 false
func decodeFlex(data []byte, out interface{}) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return false
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return false
		}
		data = []byte(inner)
	}
	return json.Unmarshal(data, out) == nil
}

// flexScan 把数据库返回值转成字节流后走 decodeFlex
func flexScan(value interface{}, out interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case []byte:
		return decodeFlex(v, out)
	case string:
		return decodeFlex([]byte(v), out)
	default:
		return false
	}
}

// FlexStrings 图片/作品 URL 列表，对应 JSONB 列
type FlexStrings []string

func (s *FlexStrings) UnmarshalJSON(data []byte) error {
	var out []string
	if !decodeFlex(data, &out) {
		*s = FlexStrings{}
		return nil
	}
	*s = out
	return nil
}

func (s FlexStrings) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("marshal flex strings: %w", err)
	}
	return string(b), nil
}

func (s *FlexStrings) Scan(value interface{}) error {
	var out []string
	if !flexScan(value, &out) {
		*s = FlexStrings{}
		return nil
	}
	*s = out
	return nil
}

func (FlexStrings) GormDataType() string {
	return "jsonb"
}

// FlexLinks 资源链接列表，对应 JSONB 列
type FlexLinks []ResourceLink

func (l *FlexLinks) UnmarshalJSON(data []byte) error {
	var out []ResourceLink
	if !decodeFlex(data, &out) {
		*l = FlexLinks{}
		return nil
	}
	*l = out
	return nil
}

func (l FlexLinks) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]ResourceLink(l))
	if err != nil {
		return nil, fmt.Errorf("marshal flex links: %w", err)
	}
	return string(b), nil
}

func (l *FlexLinks) Scan(value interface{}) error {
	var out []ResourceLink
	if !flexScan(value, &out) {
		*l = FlexLinks{}
		return nil
	}
	*l = out
	return nil
}

func (FlexLinks) GormDataType() string {
	return "jsonb"
}

// FlexRecords 消费记录列表，对应 JSONB 列
type FlexRecords []ConsumptionRecord

func (r *FlexRecords) UnmarshalJSON(data []byte) error {
	var out []ConsumptionRecord
	if !decodeFlex(data, &out) {
		*r = FlexRecords{}
		return nil
	}
	*r = out
	return nil
}

func (r FlexRecords) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]ConsumptionRecord(r))
	if err != nil {
		return nil, fmt.Errorf("marshal flex records: %w", err)
	}
	return string(b), nil
}

func (r *FlexRecords) Scan(value interface{}) error {
	var out []ConsumptionRecord
	if !flexScan(value, &out) {
		*r = FlexRecords{}
		return nil
	}
	*r = out
	return nil
}

func (FlexRecords) GormDataType() string {
	return "jsonb"
}
