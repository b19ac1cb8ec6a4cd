package model

// ResourceLink 命名资源链接，小组资源位和负责人项目位共用
type ResourceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
