package model

// ConsumptionRecord 第三方生成平台账号消费记录，挂在小组名下
type ConsumptionRecord struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	Package  string   `json:"package"`  // 套餐标识，如 jimeng-299
	Amount   float64  `json:"amount"`   // 金额
	Datetime string   `json:"datetime"` // 本地化日期时间字符串，非标准时间戳
	Note     string   `json:"note,omitempty"`
}

// Platform 消费平台
type Platform string

const (
	PlatformJimeng Platform = "jimeng" // 即梦
	PlatformHailuo Platform = "hailuo" // 海螺
	PlatformVidu   Platform = "vidu"
	PlatformOther  Platform = "other"
)
