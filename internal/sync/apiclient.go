package sync

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"github.com/go-resty/resty/v2"
)

// Client REST 网关客户端
type Client struct {
	http *resty.Client
	base string
}

// NewClient 创建网关客户端，base 形如 http://host:port/api
func NewClient(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := resty.New().SetTimeout(timeout)
	return &Client{
		http: c,
		base: strings.TrimSuffix(base, "/"),
	}
}

// apiEnvelope 网关统一响应包
type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	URL     string          `json:"url"`
}

// do 发请求并防御性解包。后端可能返回非 JSON 体
// （比如 413 的 HTML），这时取原始文本当错误消息
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*apiEnvelope, error) {
	req := c.http.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, c.base+path)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}

	var env apiEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		msg := strings.TrimSpace(string(resp.Body()))
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("请求失败: %s", msg)
	}

	if resp.IsError() || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("请求失败: %s", msg)
	}

	return &env, nil
}

// GetTeams 拉取全部小组
func (c *Client) GetTeams(ctx context.Context) ([]model.Team, error) {
	env, err := c.do(ctx, "GET", "/teams", nil)
	if err != nil {
		return nil, err
	}
	var teams []model.Team
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &teams); err != nil {
			return nil, fmt.Errorf("解析小组数据失败: %w", err)
		}
	}
	return teams, nil
}

// PutTeam 整行 upsert 小组
func (c *Client) PutTeam(ctx context.Context, team model.Team) error {
	_, err := c.do(ctx, "PUT", "/teams", team)
	return err
}

// DeleteTeam 删除小组
func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	_, err := c.do(ctx, "DELETE", "/teams?id="+url.QueryEscape(id), nil)
	return err
}

// GetNews 拉取全部快讯
func (c *Client) GetNews(ctx context.Context) ([]model.News, error) {
	env, err := c.do(ctx, "GET", "/news", nil)
	if err != nil {
		return nil, err
	}
	var news []model.News
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &news); err != nil {
			return nil, fmt.Errorf("解析快讯数据失败: %w", err)
		}
	}
	return news, nil
}

// AddNews 新增快讯
func (c *Client) AddNews(ctx context.Context, item model.News) error {
	_, err := c.do(ctx, "POST", "/news", item)
	return err
}

// UpdateNews 更新快讯
func (c *Client) UpdateNews(ctx context.Context, item model.News) error {
	_, err := c.do(ctx, "PUT", "/news", item)
	return err
}

// DeleteNews 删除快讯
func (c *Client) DeleteNews(ctx context.Context, id string) error {
	_, err := c.do(ctx, "DELETE", "/news?id="+url.QueryEscape(id), nil)
	return err
}

// GetAnnouncement 读取公告
func (c *Client) GetAnnouncement(ctx context.Context) (string, error) {
	env, err := c.do(ctx, "GET", "/announcement", nil)
	if err != nil {
		return "", err
	}
	var content string
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &content); err != nil {
			return "", fmt.Errorf("解析公告失败: %w", err)
		}
	}
	return content, nil
}

// PutAnnouncement 写入公告
func (c *Client) PutAnnouncement(ctx context.Context, content string) error {
	_, err := c.do(ctx, "PUT", "/announcement", map[string]string{"content": content})
	return err
}

// Upload 上传图片字节流，返回对象存储 URL
func (c *Client) Upload(ctx context.Context, pathname, contentType string, data []byte) (string, error) {
	body := map[string]string{
		"file":     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		"pathname": pathname,
	}
	env, err := c.do(ctx, "POST", "/upload", body)
	if err != nil {
		return "", err
	}
	if env.URL == "" {
		return "", fmt.Errorf("上传响应缺少 url")
	}
	return env.URL, nil
}

// DeleteBlob 按 URL 删除对象存储文件
func (c *Client) DeleteBlob(ctx context.Context, rawURL string) error {
	_, err := c.do(ctx, "POST", "/blob-delete", map[string]string{"url": rawURL})
	return err
}
